package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/api/metrics"
	"github.com/casazul/real-estate-api/internal/api/middleware"
	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

// imagesFormField is the multipart field carrying listing images.
const imagesFormField = "images"

type PropertyHandler struct {
	propertyService ports.PropertyService
	uploader        ports.ImageUploader
}

func NewPropertyHandler(propertyService ports.PropertyService, uploader ports.ImageUploader) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService, uploader: uploader}
}

type createPropertyRequest struct {
	Title           string   `json:"title" form:"title"`
	Description     string   `json:"description" form:"description"`
	Price           int64    `json:"price" form:"price"`
	Location        string   `json:"location" form:"location"`
	AnnounceType    string   `json:"announceType" form:"announceType"`
	PetAllowed      *bool    `json:"petAllowed" form:"petAllowed"`
	NumberBedrooms  int      `json:"numberBedrooms" form:"numberBedrooms"`
	NumberBathrooms int      `json:"numberBathrooms" form:"numberBathrooms"`
	HasGarage       *bool    `json:"hasGarage" form:"hasGarage"`
	Images          []string `json:"images"`
}

type updatePropertyRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Price           *int64   `json:"price"`
	Location        *string  `json:"location"`
	AnnounceType    *string  `json:"announceType"`
	PetAllowed      *bool    `json:"petAllowed"`
	NumberBedrooms  *int     `json:"numberBedrooms"`
	NumberBathrooms *int     `json:"numberBathrooms"`
	HasGarage       *bool    `json:"hasGarage"`
	Images          []string `json:"images"`
}

type propertyResponse struct {
	Property *domain.Property `json:"property"`
}

type propertiesResponse struct {
	Properties         []*domain.Property `json:"properties"`
	NumberOfProperties int                `json:"numberOfProperties"`
}

// List returns a filtered, sorted, paged set of listings.
//
// @Summary      List property listings
// @Tags         properties
// @Produce      json
// @Param        title           query     string  false  "Title substring, case-insensitive"
// @Param        petAllowed      query     bool    false  "Exact match on pet policy"
// @Param        hasGarage       query     bool    false  "Exact match on garage"
// @Param        announceType    query     string  false  "sale or rent"
// @Param        numericFilters  query     string  false  "Comma-separated field<op>value conditions"
// @Param        state           query     string  false  "State substring of the populated location"
// @Param        city            query     string  false  "City substring of the populated location"
// @Param        sort            query     string  false  "Comma-separated sort fields, prefix with - for descending"
// @Param        select          query     string  false  "Comma-separated projection fields"
// @Param        page            query     int     false  "Page number, default 1"
// @Param        limit           query     int     false  "Page size, default 6"
// @Success      200             {object}  propertiesResponse
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	properties, err := h.propertyService.List(c.Request().Context(), parsePropertyFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: properties, NumberOfProperties: len(properties)})
}

// Get returns one listing by id with its announcer populated.
//
// @Summary      Get a listing
// @Tags         properties
// @Produce      json
// @Param        propertyId  path      string  true  "Property id"
// @Success      200         {object}  propertyResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /properties/{propertyId} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	property, err := h.propertyService.Get(c.Request().Context(), c.Param("propertyId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyResponse{Property: property})
}

// ListByUser returns every listing announced by the given user.
//
// @Summary      List a user's listings
// @Tags         properties
// @Produce      json
// @Param        userId  path      string  true  "Announcer user id"
// @Success      200     {object}  propertiesResponse
// @Failure      400     {object}  errorResponse
// @Router       /properties/user/{userId} [get]
func (h *PropertyHandler) ListByUser(c echo.Context) error {
	properties, err := h.propertyService.ListByAnnouncer(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: properties, NumberOfProperties: len(properties)})
}

// Create adds a listing announced by the signed-in caller. Images arrive
// either as multipart files, which are uploaded to the object store, or as
// a plain URL list in a JSON body.
//
// @Summary      Create a listing
// @Tags         properties
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Success      201  {object}  propertyResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	images := req.Images
	if files := formFiles(c, imagesFormField); len(files) > 0 {
		uploads, err := readUploads(files)
		if err != nil {
			return err
		}
		urls, err := h.uploader.Upload(c.Request().Context(), uploads)
		if err != nil {
			return err
		}
		metrics.ImagesUploadedTotal.Add(float64(len(urls)))
		images = urls
	}

	announceType := domain.ParseAnnounceType(req.AnnounceType)
	property, err := h.propertyService.Create(c.Request().Context(), ports.CreatePropertyInput{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		LocationID:      req.Location,
		AnnouncerID:     claims.UserID,
		AnnounceType:    announceType,
		PetAllowed:      req.PetAllowed,
		NumberBedrooms:  req.NumberBedrooms,
		NumberBathrooms: req.NumberBathrooms,
		HasGarage:       req.HasGarage,
		Images:          images,
	})
	if err != nil {
		return err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(announceType)).Inc()
	return c.JSON(http.StatusCreated, propertyResponse{Property: property})
}

// Update changes the given fields of a listing.
//
// @Summary      Update a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        propertyId  path      string                 true  "Property id"
// @Param        body        body      updatePropertyRequest  true  "Fields to change"
// @Success      200         {object}  propertyResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /properties/{propertyId} [patch]
func (h *PropertyHandler) Update(c echo.Context) error {
	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	update := ports.PropertyUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		LocationID:      req.Location,
		PetAllowed:      req.PetAllowed,
		NumberBedrooms:  req.NumberBedrooms,
		NumberBathrooms: req.NumberBathrooms,
		HasGarage:       req.HasGarage,
		Images:          req.Images,
	}
	if req.AnnounceType != nil {
		at := domain.ParseAnnounceType(*req.AnnounceType)
		update.AnnounceType = &at
	}

	property, err := h.propertyService.Update(c.Request().Context(), c.Param("propertyId"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyResponse{Property: property})
}

// Delete removes a listing and returns the deleted document.
//
// @Summary      Delete a listing
// @Tags         properties
// @Produce      json
// @Param        propertyId  path      string  true  "Property id"
// @Success      200         {object}  propertyResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /properties/{propertyId} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	property, err := h.propertyService.Delete(c.Request().Context(), c.Param("propertyId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyResponse{Property: property})
}

// formFiles returns the multipart files of the given field, or nil when the
// request carries no multipart form.
func formFiles(c echo.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

// readUploads buffers each multipart file into memory. Image size limits are
// enforced downstream by the uploader.
func readUploads(files []*multipart.FileHeader) ([]ports.ImageUpload, error) {
	uploads := make([]ports.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
		}
		uploads = append(uploads, ports.ImageUpload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Data:     data,
		})
	}
	return uploads, nil
}
