package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"
)

type createAdminPayload struct {
	FullName     string   `json:"fullName"`
	Username     string   `json:"username" binding:"required"`
	Password     string   `json:"password" binding:"required,min=8"`
	ExternalID   *string  `json:"externalId"`
	IsSuperAdmin bool     `json:"isSuperAdmin"`
	Permissions  []string `json:"permissions"`
}

type AdminController struct {
	AdminSvc *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{AdminSvc: svc}
}

func (ac *AdminController) GetAdmins(c *gin.Context) {
	admins, err := ac.AdminSvc.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admins)
}

func (ac *AdminController) CreateAdmin(c *gin.Context) {
	var p createAdminPayload
	if !bindJSON(c, &p) {
		return
	}
	admin, err := ac.AdminSvc.CreateAdmin(c.Request.Context(), services.AdminInput{
		FullName:     p.FullName,
		Username:     p.Username,
		Password:     p.Password,
		ExternalID:   p.ExternalID,
		IsSuperAdmin: p.IsSuperAdmin,
		Permissions:  p.Permissions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, admin)
}

func (ac *AdminController) DeleteAdmin(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor := middleware.CurrentAdmin(c)
	if actor == nil {
		respondError(c, services.ErrUnauthorized)
		return
	}
	if err := ac.AdminSvc.DeleteAdmin(c.Request.Context(), actor.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GrantPermission handles PUT /api/admin/admins/:id/permissions/:permission
func (ac *AdminController) GrantPermission(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	admin, err := ac.AdminSvc.GrantPermission(c.Request.Context(), id, strings.TrimSpace(c.Param("permission")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admin)
}

// RevokePermission handles DELETE /api/admin/admins/:id/permissions/:permission
func (ac *AdminController) RevokePermission(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	admin, err := ac.AdminSvc.RevokePermission(c.Request.Context(), id, strings.TrimSpace(c.Param("permission")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admin)
}
