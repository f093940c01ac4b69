package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type createRoomBookingPayload struct {
	GuestID   uint   `json:"guestId" binding:"required"`
	RoomID    uint   `json:"roomId" binding:"required"`
	CheckIn   string `json:"checkIn" binding:"required,isodate"`
	CheckOut  string `json:"checkOut" binding:"required,isodate"`
	PartySize int    `json:"partySize" binding:"required,min=1"`
	WithMeal  bool   `json:"withMeal"`
	Phone     string `json:"phone" binding:"phone"`
	Notes     string `json:"notes"`
}

type createServiceBookingPayload struct {
	GuestID       uint   `json:"guestId" binding:"required"`
	ServiceID     uint   `json:"serviceId" binding:"required"`
	RoomBookingID *uint  `json:"roomBookingId"`
	Date          string `json:"date" binding:"required,isodate"`
	StartTime     string `json:"startTime" binding:"required,clock"`
	EndTime       string `json:"endTime" binding:"required,clock"`
	PartySize     int    `json:"partySize" binding:"required,min=1"`
	Notes         string `json:"notes"`
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// CreateRoomBooking handles POST /api/bookings/rooms
func (bc *BookingController) CreateRoomBooking(c *gin.Context) {
	var p createRoomBookingPayload
	if !bindJSON(c, &p) {
		return
	}
	checkIn, _ := utils.ParseDate(p.CheckIn)
	checkOut, _ := utils.ParseDate(p.CheckOut)

	booking, err := bc.BookingSvc.CreateRoomBooking(c.Request.Context(), services.RoomBookingRequest{
		GuestID:   p.GuestID,
		RoomID:    p.RoomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		PartySize: p.PartySize,
		WithMeal:  p.WithMeal,
		Phone:     p.Phone,
		Notes:     p.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// CreateServiceBooking handles POST /api/bookings/services
func (bc *BookingController) CreateServiceBooking(c *gin.Context) {
	var p createServiceBookingPayload
	if !bindJSON(c, &p) {
		return
	}
	start, end, err := serviceInterval(p.Date, p.StartTime, p.EndTime)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	booking, err := bc.BookingSvc.CreateServiceBooking(c.Request.Context(), services.ServiceBookingRequest{
		GuestID:       p.GuestID,
		ServiceID:     p.ServiceID,
		RoomBookingID: p.RoomBookingID,
		Start:         start,
		End:           end,
		PartySize:     p.PartySize,
		Notes:         p.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (bc *BookingController) GetRoomBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.GetRoomBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) GetServiceBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.GetServiceBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CancelRoomBooking handles POST /api/bookings/rooms/:id/cancel
func (bc *BookingController) CancelRoomBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.CancelRoomBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CancelServiceBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.CancelServiceBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// SetRoomBookingStatus handles PATCH /api/admin/bookings/rooms/:id/status
func (bc *BookingController) SetRoomBookingStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p statusPayload
	if !bindJSON(c, &p) {
		return
	}
	booking, err := bc.BookingSvc.SetRoomBookingStatus(c.Request.Context(), id, p.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) SetServiceBookingStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p statusPayload
	if !bindJSON(c, &p) {
		return
	}
	booking, err := bc.BookingSvc.SetServiceBookingStatus(c.Request.Context(), id, p.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
