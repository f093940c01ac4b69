package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AdminSvc *services.AdminService
}

func NewAuthController(svc *services.AdminService) *AuthController {
	return &AuthController{AdminSvc: svc}
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var p loginPayload
	if !bindJSON(c, &p) {
		return
	}
	token, admin, err := ac.AdminSvc.Authenticate(c.Request.Context(), p.Username, p.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "admin": admin})
}

// Me handles GET /api/admin/me
func (ac *AuthController) Me(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, middleware.CurrentAdmin(c))
}
