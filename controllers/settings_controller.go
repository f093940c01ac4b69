package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

// GetSettings handles GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	st, err := sc.SettingsSvc.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, st)
}

// UpdateSettings handles PUT /api/admin/settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var in services.SettingsInput
	if !bindJSON(c, &in) {
		return
	}
	st, err := sc.SettingsSvc.UpdateSettings(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, st)
}
