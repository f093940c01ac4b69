package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

type guestPayload struct {
	ExternalID string `json:"externalId" binding:"required"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone" binding:"phone"`
}

type GuestController struct {
	GuestSvc   *services.GuestService
	BookingSvc *services.BookingService
}

func NewGuestController(guests *services.GuestService, bookings *services.BookingService) *GuestController {
	return &GuestController{GuestSvc: guests, BookingSvc: bookings}
}

// Register handles POST /api/guests. Known external ids return the existing
// guest.
func (gc *GuestController) Register(c *gin.Context) {
	var p guestPayload
	if !bindJSON(c, &p) {
		return
	}
	guest, err := gc.GuestSvc.GetOrCreateGuest(c.Request.Context(), services.GuestProfile{
		ExternalID: p.ExternalID,
		Username:   p.Username,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"guest": guest, "displayName": guest.DisplayName()})
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guest, err := gc.GuestSvc.GetGuest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (gc *GuestController) GetGuestByExternalID(c *gin.Context) {
	ext := strings.TrimSpace(c.Param("externalId"))
	if ext == "" {
		badRequest(c, "externalId is required")
		return
	}
	guest, err := gc.GuestSvc.GetGuestByExternalID(c.Request.Context(), ext)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// GuestBookings handles GET /api/guests/:id/bookings
func (gc *GuestController) GuestBookings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	history, err := gc.BookingSvc.GuestBookings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, history)
}
