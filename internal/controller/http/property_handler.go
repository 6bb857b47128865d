package http

import (
	"errors"
	"net/http"
	"strconv"

	"propmarket/internal/entity"
	"propmarket/internal/usecase"
	"propmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyUseCase usecase.PropertyUseCase
	logger          *logger.Logger
}

func NewPropertyHandler(propertyUseCase usecase.PropertyUseCase, logger *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
		logger:          logger,
	}
}

type PropertyRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price" binding:"required,gt=0"`
	City         string `json:"city" binding:"required"`
	Address      string `json:"address"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	SurfaceArea  int    `json:"surface_area"`
	PropertyType string `json:"property_type" binding:"required"`
	ListingType  string `json:"listing_type" binding:"required,oneof=sale rent"`
	Status       string `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// Create godoc
// @Summary      Create a property listing
// @Description  Post a new listing, subject to the caller's listing quota
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PropertyRequest true "Listing details"
// @Success      201  {object}  entity.Property
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.propertyUseCase.Create(userID, &entity.Property{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		City:         req.City,
		Address:      req.Address,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SurfaceArea:  req.SurfaceArea,
		PropertyType: req.PropertyType,
		ListingType:  entity.ListingType(req.ListingType),
		Status:       entity.PropertyStatus(req.Status),
	})
	if err != nil {
		h.respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Get godoc
// @Summary      Get a property
// @Description  Fetch a listing by ID and count the view
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200  {object}  entity.Property
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.propertyUseCase.Get(c.Param("id"))
	if err != nil {
		h.respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Update godoc
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        request body PropertyRequest true "Listing details"
// @Success      200  {object}  entity.Property
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.propertyUseCase.Update(userID, &entity.Property{
		ID:           c.Param("id"),
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		City:         req.City,
		Address:      req.Address,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SurfaceArea:  req.SurfaceArea,
		PropertyType: req.PropertyType,
		ListingType:  entity.ListingType(req.ListingType),
		Status:       entity.PropertyStatus(req.Status),
	})
	if err != nil {
		h.respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Delete godoc
// @Summary      Delete a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.propertyUseCase.Delete(userID, c.Param("id")); err != nil {
		h.respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// Search godoc
// @Summary      Search published listings
// @Tags         properties
// @Produce      json
// @Param        keyword query string false "Title or description keyword"
// @Param        city query string false "City"
// @Param        property_type query string false "Property type"
// @Param        listing_type query string false "sale or rent"
// @Param        min_price query int false "Minimum price (minor units)"
// @Param        max_price query int false "Maximum price (minor units)"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /properties [get]
func (h *PropertyHandler) Search(c *gin.Context) {
	limit, offset := pagination(c)
	minPrice, _ := strconv.ParseInt(c.Query("min_price"), 10, 64)
	maxPrice, _ := strconv.ParseInt(c.Query("max_price"), 10, 64)

	properties, err := h.propertyUseCase.Search(entity.PropertyFilter{
		Keyword:      c.Query("keyword"),
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
		ListingType:  c.Query("listing_type"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		h.logger.Error("Failed to search properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties, "count": len(properties)})
}

// ListMine godoc
// @Summary      List my listings
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /properties/mine [get]
func (h *PropertyHandler) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")

	properties, err := h.propertyUseCase.ListMine(userID)
	if err != nil {
		h.logger.Error("Failed to list properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties, "count": len(properties)})
}

// UploadImage godoc
// @Summary      Upload a listing image
// @Tags         properties
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Property ID"
// @Param        image formData file true "Image file"
// @Param        position formData int false "Display position"
// @Success      201  {object}  entity.PropertyImage
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /properties/{id}/images [post]
func (h *PropertyHandler) UploadImage(c *gin.Context) {
	userID := c.GetString("user_id")
	propertyID := c.Param("id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
		return
	}
	defer file.Close()

	position, _ := strconv.Atoi(c.PostForm("position"))

	image, err := h.propertyUseCase.UploadImage(userID, propertyID, file, fileHeader.Header.Get("Content-Type"), position)
	if err != nil {
		h.respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *PropertyHandler) respondPropertyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrQuotaExceeded), errors.Is(err, usecase.ErrPackageExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Property operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
