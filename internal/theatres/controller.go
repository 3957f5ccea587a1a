package theatres

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	CreateTheatre(c *gin.Context)
	GetTheatre(c *gin.Context)
	ListTheatres(c *gin.Context)
	UpdateTheatre(c *gin.Context)

	CreateAuditorium(c *gin.Context)
	ListAuditoriums(c *gin.Context)
	UpdateAuditorium(c *gin.Context)
	DeleteAuditorium(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTheatre(c *gin.Context) {
	var req CreateTheatreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	theatre, err := ctrl.service.CreateTheatre(req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Theatre created successfully", theatre, nil)
}

func (ctrl *controller) GetTheatre(c *gin.Context) {
	theatreID, err := uuid.Parse(c.Param("theatreId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid theatre ID", nil, err.Error())
		return
	}

	theatre, err := ctrl.service.GetTheatre(theatreID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Theatre retrieved successfully", theatre, nil)
}

func (ctrl *controller) ListTheatres(c *gin.Context) {
	theatres, err := ctrl.service.ListTheatres()
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Theatres retrieved successfully", theatres, nil)
}

func (ctrl *controller) UpdateTheatre(c *gin.Context) {
	theatreID, err := uuid.Parse(c.Param("theatreId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid theatre ID", nil, err.Error())
		return
	}

	var req UpdateTheatreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	theatre, err := ctrl.service.UpdateTheatre(theatreID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Theatre updated successfully", theatre, nil)
}

func (ctrl *controller) CreateAuditorium(c *gin.Context) {
	theatreID, err := uuid.Parse(c.Param("theatreId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid theatre ID", nil, err.Error())
		return
	}

	var req CreateAuditoriumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	audi, err := ctrl.service.CreateAuditorium(theatreID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Auditorium created successfully", audi, nil)
}

func (ctrl *controller) ListAuditoriums(c *gin.Context) {
	theatreID, err := uuid.Parse(c.Param("theatreId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid theatre ID", nil, err.Error())
		return
	}

	audis, err := ctrl.service.ListAuditoriums(theatreID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Auditoriums retrieved successfully", audis, nil)
}

func (ctrl *controller) UpdateAuditorium(c *gin.Context) {
	theatreID, err := uuid.Parse(c.Param("theatreId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid theatre ID", nil, err.Error())
		return
	}

	audiID, err := uuid.Parse(c.Param("audiId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid auditorium ID", nil, err.Error())
		return
	}

	var req UpdateAuditoriumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	audi, err := ctrl.service.UpdateAuditorium(c.Request.Context(), theatreID, audiID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Auditorium updated successfully", audi, nil)
}

func (ctrl *controller) DeleteAuditorium(c *gin.Context) {
	theatreID, err := uuid.Parse(c.Param("theatreId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid theatre ID", nil, err.Error())
		return
	}

	audiID, err := uuid.Parse(c.Param("audiId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid auditorium ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteAuditorium(c.Request.Context(), theatreID, audiID); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Auditorium deleted successfully", nil, nil)
}
