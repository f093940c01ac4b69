package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

const adminKey = "admin"

// Authority verifies staff tokens and permissions.
type Authority interface {
	ParseToken(raw string) (uint, error)
	GetAdmin(ctx context.Context, id uint) (*models.Admin, error)
	CheckPermission(ctx context.Context, adminID uint, permission string) (*models.Admin, error)
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func deny(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, services.ErrTimeout):
		utils.JSONError(c, http.StatusServiceUnavailable, "timeout", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// RequireAdmin resolves the bearer token to an admin and stores it on the
// context for later handlers.
func RequireAdmin(auth Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		id, err := auth.ParseToken(raw)
		if err != nil {
			deny(c, err)
			return
		}
		admin, err := auth.GetAdmin(c.Request.Context(), id)
		if err != nil {
			deny(c, err)
			return
		}
		c.Set(adminKey, admin)
		c.Next()
	}
}

// RequirePermission must run after RequireAdmin.
func RequirePermission(auth Authority, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := CurrentAdmin(c)
		if admin == nil {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if _, err := auth.CheckPermission(c.Request.Context(), admin.ID, permission); err != nil {
			deny(c, err)
			return
		}
		c.Next()
	}
}

func CurrentAdmin(c *gin.Context) *models.Admin {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil
	}
	admin, _ := v.(*models.Admin)
	return admin
}
