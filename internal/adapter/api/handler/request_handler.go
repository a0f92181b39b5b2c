package handler

import (
	"github.com/labstack/echo/v4"

	"garagemap/internal/usecase"
	"garagemap/pkg/errors"
	"garagemap/pkg/response"
	"garagemap/pkg/utils"
)

type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
	userUseCase    *usecase.UserUseCase
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase, userUseCase *usecase.UserUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
		userUseCase:    userUseCase,
	}
}

type createRequestRequest struct {
	MechanicID  string  `json:"mechanic_id" validate:"required"`
	ServiceType string  `json:"service_type" validate:"required,oneof=car bike truck emergency towing inspection"`
	Urgency     string  `json:"urgency,omitempty" validate:"omitempty,oneof=low medium high emergency"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Address     string  `json:"address,omitempty"`
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.CreateRequest(c.Request().Context(), uid, usecase.CreateRequestInput{
		MechanicID:  req.MechanicID,
		ServiceType: req.ServiceType,
		Urgency:     req.Urgency,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.GetRequest(c.Request().Context(), uid, requestID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus drives one lifecycle edge. The acting role is taken from the
// caller's profile, not the payload.
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.Transition(c.Request().Context(), requestID, uid, user.Role, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *RequestHandler) ListMyRequests(c echo.Context) error {
	uid := c.Get("uid").(string)
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.requestUseCase.ListUserRequests(c.Request().Context(), uid, status, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

// ListAssignedRequests lists requests addressed to the caller's workshop.
func (h *RequestHandler) ListAssignedRequests(c echo.Context) error {
	uid := c.Get("uid").(string)
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.requestUseCase.ListMechanicRequests(c.Request().Context(), uid, status, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}
