package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

type LocationHandler struct {
	locationService ports.LocationService
}

func NewLocationHandler(locationService ports.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

type createLocationRequest struct {
	State string `json:"state" validate:"required"`
	City  string `json:"city" validate:"required"`
}

type updateLocationRequest struct {
	State *string `json:"state"`
	City  *string `json:"city"`
}

type locationResponse struct {
	Location *domain.Location `json:"location"`
}

type locationsResponse struct {
	Locations         []*domain.Location `json:"locations"`
	NumberOfLocations int                `json:"numberOfLocations"`
}

type statesResponse struct {
	States         []string `json:"states"`
	NumberOfStates int      `json:"numberOfStates"`
}

type citiesResponse struct {
	Cities         []string `json:"cities"`
	NumberOfCities int      `json:"numberOfCities"`
}

// List returns locations matching the optional state/city substring filters.
//
// @Summary      List locations
// @Tags         locations
// @Produce      json
// @Param        state   query     string  false  "State substring, case-insensitive"
// @Param        city    query     string  false  "City substring, case-insensitive"
// @Param        sort    query     string  false  "Comma-separated sort fields, prefix with - for descending"
// @Param        select  query     string  false  "Comma-separated projection fields"
// @Success      200     {object}  locationsResponse
// @Router       /locations [get]
func (h *LocationHandler) List(c echo.Context) error {
	locations, err := h.locationService.List(c.Request().Context(), parseLocationFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationsResponse{Locations: locations, NumberOfLocations: len(locations)})
}

// Get returns one location by id.
//
// @Summary      Get a location
// @Tags         locations
// @Produce      json
// @Param        locationId  path      string  true  "Location id"
// @Success      200         {object}  locationResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /locations/{locationId} [get]
func (h *LocationHandler) Get(c echo.Context) error {
	location, err := h.locationService.Get(c.Request().Context(), c.Param("locationId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationResponse{Location: location})
}

// States returns the distinct states, sorted.
//
// @Summary      List distinct states
// @Tags         locations
// @Produce      json
// @Success      200  {object}  statesResponse
// @Router       /locations/states [get]
func (h *LocationHandler) States(c echo.Context) error {
	states, err := h.locationService.States(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statesResponse{States: states, NumberOfStates: len(states)})
}

// Cities returns the distinct cities of the given state, sorted. Hitting the
// route without a state segment is a client error.
//
// @Summary      List cities of a state
// @Tags         locations
// @Produce      json
// @Param        state  path      string  true  "State name"
// @Success      200    {object}  citiesResponse
// @Failure      400    {object}  errorResponse
// @Router       /locations/cities/{state} [get]
func (h *LocationHandler) Cities(c echo.Context) error {
	cities, err := h.locationService.CitiesByState(c.Request().Context(), c.Param("state"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, citiesResponse{Cities: cities, NumberOfCities: len(cities)})
}

// Create adds a location. Reserved for administrators.
//
// @Summary      Create a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body      createLocationRequest  true  "Location details"
// @Success      201   {object}  locationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /locations [post]
func (h *LocationHandler) Create(c echo.Context) error {
	var req createLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	location, err := h.locationService.Create(c.Request().Context(), ports.CreateLocationInput{
		State: req.State,
		City:  req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, locationResponse{Location: location})
}

// Update changes a location's state and/or city.
//
// @Summary      Update a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        locationId  path      string                 true  "Location id"
// @Param        body        body      updateLocationRequest  true  "Fields to change"
// @Success      200         {object}  locationResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /locations/{locationId} [patch]
func (h *LocationHandler) Update(c echo.Context) error {
	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	location, err := h.locationService.Update(c.Request().Context(), c.Param("locationId"), ports.LocationUpdate{
		State: req.State,
		City:  req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationResponse{Location: location})
}

// Delete removes a location and returns the deleted document.
//
// @Summary      Delete a location
// @Tags         locations
// @Produce      json
// @Param        locationId  path      string  true  "Location id"
// @Success      200         {object}  locationResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /locations/{locationId} [delete]
func (h *LocationHandler) Delete(c echo.Context) error {
	location, err := h.locationService.Delete(c.Request().Context(), c.Param("locationId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationResponse{Location: location})
}
