package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

type reviewPayload struct {
	GuestID uint   `json:"guestId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: svc}
}

// RoomReviews handles GET /api/rooms/:id/reviews
func (rc *ReviewController) RoomReviews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rating, err := rc.ReviewSvc.RoomReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rating)
}

// AddRoomReview handles POST /api/rooms/:id/reviews
func (rc *ReviewController) AddRoomReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p reviewPayload
	if !bindJSON(c, &p) {
		return
	}
	review, err := rc.ReviewSvc.AddRoomReview(c.Request.Context(), p.GuestID, id, p.Rating, p.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}
