package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"garagemap/internal/usecase"
	"garagemap/pkg/errors"
	"garagemap/pkg/response"
	"garagemap/pkg/utils"
)

type MechanicHandler struct {
	mechanicUseCase *usecase.MechanicUseCase
}

func NewMechanicHandler(mechanicUseCase *usecase.MechanicUseCase) *MechanicHandler {
	return &MechanicHandler{
		mechanicUseCase: mechanicUseCase,
	}
}

// ListMechanics is the public workshop directory. Passing lat and lng sorts
// results nearest first and attaches a distance to each entry.
func (h *MechanicHandler) ListMechanics(c echo.Context) error {
	input := usecase.ListMechanicsInput{
		Service:  c.QueryParam("service"),
		City:     c.QueryParam("city"),
		Search:   c.QueryParam("search"),
		OpenOnly: c.QueryParam("open") == "true",
	}

	latStr := c.QueryParam("lat")
	lngStr := c.QueryParam("lng")
	if latStr != "" || lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return response.Error(c, errors.BadRequest("Invalid coordinates", nil))
		}
		input.HasLocation = true
		input.Latitude = lat
		input.Longitude = lng
	}

	pagination := utils.GetPaginationParams(c)

	mechanics, total, err := h.mechanicUseCase.ListMechanics(c.Request().Context(), input, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, mechanics, total, pagination.Page, pagination.PageSize)
}

func (h *MechanicHandler) GetMechanic(c echo.Context) error {
	mechanicID := c.Param("id")
	if mechanicID == "" {
		return response.Error(c, errors.BadRequest("Mechanic ID is required", nil))
	}

	mechanic, err := h.mechanicUseCase.GetMechanic(c.Request().Context(), mechanicID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, mechanic)
}

func (h *MechanicHandler) GetMyWorkshop(c echo.Context) error {
	uid := c.Get("uid").(string)

	mechanic, err := h.mechanicUseCase.GetOwnProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, mechanic)
}

type mechanicProfileRequest struct {
	Name         string   `json:"name" validate:"required"`
	WorkshopName string   `json:"workshop_name" validate:"required"`
	Phone        string   `json:"phone" validate:"required"`
	Email        string   `json:"email,omitempty" validate:"omitempty,email"`
	Description  string   `json:"description,omitempty"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	Latitude     float64  `json:"latitude" validate:"latitude"`
	Longitude    float64  `json:"longitude" validate:"longitude"`
	Services     []string `json:"services" validate:"required,min=1,dive,oneof=car bike truck emergency towing inspection"`
	Photo        string   `json:"photo,omitempty"`
	IsOpen       bool     `json:"is_open"`
	Availability string   `json:"availability,omitempty" validate:"omitempty,oneof=available busy offline"`
}

func (r mechanicProfileRequest) toInput() usecase.MechanicProfileInput {
	return usecase.MechanicProfileInput{
		Name:         r.Name,
		WorkshopName: r.WorkshopName,
		Phone:        r.Phone,
		Email:        r.Email,
		Description:  r.Description,
		Address:      r.Address,
		City:         r.City,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Services:     r.Services,
		Photo:        r.Photo,
		IsOpen:       r.IsOpen,
		Availability: r.Availability,
	}
}

func (h *MechanicHandler) CreateWorkshop(c echo.Context) error {
	var req mechanicProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	mechanic, err := h.mechanicUseCase.CreateProfile(c.Request().Context(), uid, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, mechanic)
}

func (h *MechanicHandler) UpdateWorkshop(c echo.Context) error {
	mechanicID := c.Param("id")
	if mechanicID == "" {
		return response.Error(c, errors.BadRequest("Mechanic ID is required", nil))
	}

	var req mechanicProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	mechanic, err := h.mechanicUseCase.UpdateProfile(c.Request().Context(), uid, mechanicID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, mechanic)
}
