package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"garagemap/internal/usecase"
	"garagemap/pkg/errors"
	"garagemap/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type submitRatingRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

func (h *ReviewHandler) SubmitRating(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	review, err := h.reviewUseCase.SubmitRating(c.Request().Context(), uid, usecase.SubmitRatingInput{
		RequestID: requestID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) GetMechanicReviews(c echo.Context) error {
	mechanicID := c.Param("id")
	if mechanicID == "" {
		return response.Error(c, errors.BadRequest("Mechanic ID is required", nil))
	}

	ratingStr := c.QueryParam("rating")
	var rating int
	if ratingStr != "" {
		var err error
		rating, err = strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 5 {
			return response.Error(c, errors.BadRequest("Invalid rating value", nil))
		}
	}

	page := 1
	limit := 20

	if pageStr := c.QueryParam("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed >= 1 {
			page = parsed
		}
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed >= 1 && parsed <= 100 {
			limit = parsed
		}
	}

	reviews, total, err := h.reviewUseCase.ListMechanicReviews(c.Request().Context(), mechanicID, rating, page, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, page, limit)
}
