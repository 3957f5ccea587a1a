package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/shared/middleware"
	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	BookSeats(c *gin.Context)
	ListMyBookings(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) BookSeats(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "user identity not found in context", nil, nil)
		return
	}

	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid slot ID", nil, err.Error())
		return
	}

	var req BookSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	booking, err := ctrl.service.Book(c.Request.Context(), identity.UserID, slotID, req.SeatsBooked)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed successfully", booking, nil)
}

func (ctrl *controller) ListMyBookings(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "user identity not found in context", nil, nil)
		return
	}

	details, err := ctrl.service.ListUserBookings(identity.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", details, nil)
}
