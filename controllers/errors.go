package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// order matters: the first match wins
var errorMappings = []errorMapping{
	{services.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range"},
	{services.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{services.ErrResourceNotFound, http.StatusNotFound, "resource_not_found"},
	{services.ErrNotFound, http.StatusNotFound, "not_found"},
	{services.ErrResourceUnavailable, http.StatusConflict, "resource_unavailable"},
	{services.ErrCapacityExceeded, http.StatusUnprocessableEntity, "capacity_exceeded"},
	{services.ErrConfiguration, http.StatusUnprocessableEntity, "resource_misconfigured"},
	{services.ErrInvalidStatusTransition, http.StatusConflict, "invalid_status_transition"},
	{services.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{services.ErrForbidden, http.StatusForbidden, "forbidden"},
	{services.ErrTimeout, http.StatusServiceUnavailable, "timeout"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// respondError renders err with the status its sentinel maps to. Faults
// are logged and reported without internal detail.
func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
	}
	utils.JSONError(c, status, code, msg)
}

func badRequest(c *gin.Context, msg string) {
	utils.JSONError(c, http.StatusBadRequest, "invalid_input", msg)
}

// bindJSON binds the body into dst and renders validation failures.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, utils.ValidationMessage(err))
		return false
	}
	return true
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		badRequest(c, name+" is required")
		return time.Time{}, false
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		badRequest(c, err.Error())
		return time.Time{}, false
	}
	return d, true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

// serviceInterval combines a calendar date with HH:MM start and end times.
func serviceInterval(date, start, end string) (time.Time, time.Time, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := utils.ParseClock(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := utils.ParseClock(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return utils.At(day, from), utils.At(day, to), nil
}
