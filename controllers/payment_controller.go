package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

type createPaymentPayload struct {
	Kind          string   `json:"kind" binding:"required,oneof=room service"`
	ReservationID uint     `json:"reservationId" binding:"required"`
	Method        string   `json:"method" binding:"required"`
	Amount        *float64 `json:"amount"`
}

type paymentStatusPayload struct {
	Status     string         `json:"status" binding:"required"`
	ExternalID string         `json:"externalId"`
	Details    map[string]any `json:"details"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// CreatePayment handles POST /api/payments
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var p createPaymentPayload
	if !bindJSON(c, &p) {
		return
	}
	payment, err := pc.PaymentSvc.CreatePayment(c.Request.Context(), services.PaymentRequest{
		Kind:          p.Kind,
		ReservationID: p.ReservationID,
		Method:        p.Method,
		Amount:        p.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (pc *PaymentController) GetPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payment, err := pc.PaymentSvc.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

// ListPayments handles GET /api/payments?kind=room&reservationId=1
func (pc *PaymentController) ListPayments(c *gin.Context) {
	rid, err := strconv.ParseUint(c.Query("reservationId"), 10, 64)
	if err != nil || rid == 0 {
		badRequest(c, "invalid reservationId")
		return
	}
	list, err := pc.PaymentSvc.ListPayments(c.Request.Context(), c.Query("kind"), uint(rid))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// UpdatePaymentStatus handles PATCH /api/admin/payments/:id/status
func (pc *PaymentController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p paymentStatusPayload
	if !bindJSON(c, &p) {
		return
	}
	payment, err := pc.PaymentSvc.UpdatePaymentStatus(c.Request.Context(), id, services.PaymentUpdate{
		Status:     p.Status,
		ExternalID: p.ExternalID,
		Details:    p.Details,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}
