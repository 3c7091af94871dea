package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func (h *Handler) ListProductReviews(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	reviews, err := h.svc.Reviews.ListPublic(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) SubmitReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	review := &domain.Review{
		ProductID: id,
		UserID:    currentUser(c).ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.svc.Reviews.Submit(c.Request.Context(), review); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *Handler) AdminListReviews(c *gin.Context) {
	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "approved must be true or false", Field: "approved"})
			return
		}
		approved = &v
	}
	reviews, err := h.svc.Reviews.ListForAdmin(c.Request.Context(), approved)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) ApproveReview(c *gin.Context) {
	h.moderateReview(c, h.svc.Reviews.Approve)
}

func (h *Handler) RejectReview(c *gin.Context) {
	h.moderateReview(c, h.svc.Reviews.Reject)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Reviews.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) moderateReview(c *gin.Context, apply func(ctx context.Context, id uint64) error) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := apply(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
