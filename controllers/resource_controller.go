package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

// ResourceController serves the room and service catalogue together with
// quotes, availability and slots.
type ResourceController struct {
	Resources *services.ResourceService
	Bookings  *services.BookingService
	Settings  *services.SettingsService
}

func NewResourceController(resources *services.ResourceService, bookings *services.BookingService, settings *services.SettingsService) *ResourceController {
	return &ResourceController{Resources: resources, Bookings: bookings, Settings: settings}
}

type availabilityPayload struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// ----------------------------------------------------
// Rooms
// ----------------------------------------------------

// ListRooms handles GET /api/rooms?available=true
func (rc *ResourceController) ListRooms(c *gin.Context) {
	rooms, err := rc.Resources.ListRooms(c.Request.Context(), queryBool(c, "available"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// ListAvailableRooms handles GET /api/rooms/available?checkIn&checkOut&partySize
func (rc *ResourceController) ListAvailableRooms(c *gin.Context) {
	checkIn, ok := queryDate(c, "checkIn")
	if !ok {
		return
	}
	checkOut, ok := queryDate(c, "checkOut")
	if !ok {
		return
	}
	party, ok := queryInt(c, "partySize", 0)
	if !ok {
		return
	}
	rooms, err := rc.Resources.ListAvailableRooms(c.Request.Context(), checkIn, checkOut, party)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *ResourceController) GetRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := rc.Resources.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// QuoteRoom handles GET /api/rooms/:id/quote?checkIn&checkOut&partySize&withMeal
func (rc *ResourceController) QuoteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	checkIn, ok := queryDate(c, "checkIn")
	if !ok {
		return
	}
	checkOut, ok := queryDate(c, "checkOut")
	if !ok {
		return
	}
	party, ok := queryInt(c, "partySize", 1)
	if !ok {
		return
	}
	room, err := rc.Resources.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	quote, err := services.PriceRoomStay(room, checkIn, checkOut, party, queryBool(c, "withMeal"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}

// RoomAvailability handles GET /api/rooms/:id/availability?checkIn&checkOut
func (rc *ResourceController) RoomAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	checkIn, ok := queryDate(c, "checkIn")
	if !ok {
		return
	}
	checkOut, ok := queryDate(c, "checkOut")
	if !ok {
		return
	}
	free, err := rc.Bookings.IsRoomFree(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"roomId": id, "free": free})
}

func (rc *ResourceController) CreateRoom(c *gin.Context) {
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := rc.Resources.CreateRoom(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *ResourceController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := rc.Resources.UpdateRoom(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *ResourceController) SetRoomAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p availabilityPayload
	if !bindJSON(c, &p) {
		return
	}
	room, err := rc.Resources.SetRoomAvailability(c.Request.Context(), id, *p.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *ResourceController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.Resources.DeleteRoom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ----------------------------------------------------
// Services
// ----------------------------------------------------

func (rc *ResourceController) ListServices(c *gin.Context) {
	list, err := rc.Resources.ListServices(c.Request.Context(), queryBool(c, "available"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (rc *ResourceController) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, err := rc.Resources.GetService(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

// QuoteService handles GET /api/services/:id/quote?date&startTime&endTime&partySize
func (rc *ResourceController) QuoteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	start, end, err := serviceInterval(c.Query("date"), c.Query("startTime"), c.Query("endTime"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	party, ok := queryInt(c, "partySize", 1)
	if !ok {
		return
	}
	iv, err := services.NewInterval(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	svc, err := rc.Resources.GetService(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := services.PriceServiceBooking(svc, iv, party)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"serviceId": id, "start": start, "end": end, "total": total})
}

// ServiceSlots handles GET /api/services/:id/slots?date[&dayStart&dayEnd&slotMinutes].
// Omitted window parts come from the resort settings.
func (rc *ResourceController) ServiceSlots(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	window, err := rc.Settings.SlotWindow(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if v := strings.TrimSpace(c.Query("dayStart")); v != "" {
		if window.DayStart, err = utils.ParseClock(v); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if v := strings.TrimSpace(c.Query("dayEnd")); v != "" {
		if window.DayEnd, err = utils.ParseClock(v); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	minutes, ok := queryInt(c, "slotMinutes", 0)
	if !ok {
		return
	}
	if minutes != 0 {
		window.Granularity = time.Duration(minutes) * time.Minute
	}

	svc, err := rc.Resources.GetService(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	slots, err := rc.Bookings.AvailableSlots(ctx, svc, date, window)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, slots)
}

func (rc *ResourceController) CreateService(c *gin.Context) {
	var in services.ServiceInput
	if !bindJSON(c, &in) {
		return
	}
	svc, err := rc.Resources.CreateService(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, svc)
}

func (rc *ResourceController) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in services.ServiceInput
	if !bindJSON(c, &in) {
		return
	}
	svc, err := rc.Resources.UpdateService(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (rc *ResourceController) SetServiceAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p availabilityPayload
	if !bindJSON(c, &p) {
		return
	}
	svc, err := rc.Resources.SetServiceAvailability(c.Request.Context(), id, *p.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (rc *ResourceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.Resources.DeleteService(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
