package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"address-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AddressHandler handles address CRUD and proximity requests
type AddressHandler struct {
	service AddressService
}

// AddressService interface for dependency injection
type AddressService interface {
	Create(ctx context.Context, in models.AddressInput) (models.Address, error)
	Update(ctx context.Context, id int64, in models.AddressInput) (models.Address, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Address, error)
	Nearby(ctx context.Context, lat, lon, distanceKm float64) ([]models.Address, error)
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{service: svc}
}

// CreateAddress handles POST /addresses/ requests
//
//	@Summary	Create an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		address	body		models.AddressInput	true	"Address fields"
//	@Success	201		{object}	models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse
//	@Router		/addresses/ [post]
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var in models.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}

	address, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// UpdateAddress handles PUT /addresses/:id requests
//
//	@Summary	Replace an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Address id"
//	@Param		address	body		models.AddressInput	true	"Address fields"
//	@Success	200		{object}	models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/addresses/{id} [put]
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in models.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}

	address, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

// DeleteAddress handles DELETE /addresses/:id requests
//
//	@Summary	Delete an address
//	@Tags		addresses
//	@Produce	json
//	@Param		id	path		int	true	"Address id"
//	@Success	200	{object}	MessageResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Address deleted successfully"})
}

// ListAddresses handles GET /addresses/ requests
//
//	@Summary	List all addresses
//	@Tags		addresses
//	@Produce	json
//	@Success	200	{array}		models.Address
//	@Failure	503	{object}	ErrorResponse
//	@Router		/addresses/ [get]
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.service.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// NearbyAddresses handles GET /addresses/nearby/ requests
//
//	@Summary	Addresses within a radius
//	@Tags		addresses
//	@Produce	json
//	@Param		latitude	query		number	true	"Reference latitude"
//	@Param		longitude	query		number	true	"Reference longitude"
//	@Param		distance	query		number	true	"Radius in kilometres"
//	@Success	200			{array}		models.Address
//	@Failure	400			{object}	ErrorResponse
//	@Router		/addresses/nearby/ [get]
func (h *AddressHandler) NearbyAddresses(c *gin.Context) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	distStr := c.Query("distance")

	if latStr == "" || lonStr == "" || distStr == "" {
		respondError(c, http.StatusBadRequest, codeValidation, "missing required query parameters 'latitude', 'longitude' and 'distance'")
		return
	}

	lat, ok := parseFloat(latStr)
	if !ok {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid latitude format")
		return
	}

	lon, ok := parseFloat(lonStr)
	if !ok {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid longitude format")
		return
	}

	distance, ok := parseFloat(distStr)
	if !ok {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid distance format")
		return
	}

	addresses, err := h.service.Nearby(c.Request.Context(), lat, lon, distance)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid address id")
		return 0, false
	}
	return id, true
}

// parseFloat rejects NaN and infinities, which ParseFloat accepts.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, "address not found")
	case errors.Is(err, models.ErrStoreUnavailable):
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("store unavailable")
		respondError(c, http.StatusServiceUnavailable, codeStoreUnavailable, "store unavailable")
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("unexpected error")
		respondError(c, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
