package slots

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	GetFreeSlots(c *gin.Context)
	CreateSlotBatch(c *gin.Context)
	DeleteSlot(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetFreeSlots(c *gin.Context) {
	startDate, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD", nil, nil)
		return
	}

	endDate, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD", nil, nil)
		return
	}

	freeSlots, err := ctrl.service.FreeSlots(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Free slots retrieved successfully", freeSlots, nil)
}

func (ctrl *controller) CreateSlotBatch(c *gin.Context) {
	var req CreateSlotBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	openingDate, _ := time.Parse(dateLayout, req.OpeningDate)
	closingDate, _ := time.Parse(dateLayout, req.ClosingDate)

	hoursByAudi := make(map[uuid.UUID][]int, len(req.AudiSlots))
	for audiIDStr, hours := range req.AudiSlots {
		audiID, err := uuid.Parse(audiIDStr)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid auditorium ID in audi_slots", nil, err.Error())
			return
		}
		hoursByAudi[audiID] = hours
	}

	params := BatchParams{
		MovieID:           movieID,
		OpeningDate:       openingDate,
		ClosingDate:       closingDate,
		MovieType:         req.MovieType,
		MovieLanguage:     req.MovieLanguage,
		HoursByAuditorium: hoursByAudi,
	}

	if err := ctrl.service.CreateBatch(c.Request.Context(), params); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Slots created successfully", nil, nil)
}

func (ctrl *controller) DeleteSlot(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid slot ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteSlot(c.Request.Context(), slotID); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Slot deleted successfully", nil, nil)
}
