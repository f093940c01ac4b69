package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

// OccupancyController serves the staff calendar and daily views.
type OccupancyController struct {
	OccupancySvc *services.OccupancyService
}

func NewOccupancyController(svc *services.OccupancyService) *OccupancyController {
	return &OccupancyController{OccupancySvc: svc}
}

// AllRooms handles GET /api/admin/occupancy/rooms?start&end (end inclusive)
func (oc *OccupancyController) AllRooms(c *gin.Context) {
	start, ok := queryDate(c, "start")
	if !ok {
		return
	}
	end, ok := queryDate(c, "end")
	if !ok {
		return
	}
	spans, err := oc.OccupancySvc.AllRoomsOccupancy(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spans)
}

func (oc *OccupancyController) Room(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	start, ok := queryDate(c, "start")
	if !ok {
		return
	}
	end, ok := queryDate(c, "end")
	if !ok {
		return
	}
	spans, err := oc.OccupancySvc.RoomOccupancy(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spans)
}

// Service handles GET /api/admin/occupancy/services/:id?date
func (oc *OccupancyController) Service(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	spans, err := oc.OccupancySvc.ServiceOccupancy(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spans)
}

func (oc *OccupancyController) Arrivals(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	list, err := oc.OccupancySvc.Arrivals(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (oc *OccupancyController) Departures(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	list, err := oc.OccupancySvc.Departures(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (oc *OccupancyController) Stats(c *gin.Context) {
	stats, err := oc.OccupancySvc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
