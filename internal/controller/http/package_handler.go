package http

import (
	"errors"
	"net/http"

	"propmarket/internal/entity"
	"propmarket/internal/usecase"
	"propmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PackageHandler struct {
	packageUseCase usecase.PackageUseCase
	logger         *logger.Logger
}

func NewPackageHandler(packageUseCase usecase.PackageUseCase, logger *logger.Logger) *PackageHandler {
	return &PackageHandler{
		packageUseCase: packageUseCase,
		logger:         logger,
	}
}

type PackageRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price" binding:"required,gt=0"`
	ListingLimit int    `json:"listing_limit" binding:"required,gt=0"`
	DurationDays int    `json:"duration_days"`
	Type         string `json:"type" binding:"required,oneof=TOPUP SUBSCRIPTION"`
	IsActive     *bool  `json:"is_active"`
}

// ListActive godoc
// @Summary      List purchasable packages
// @Tags         packages
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /packages [get]
func (h *PackageHandler) ListActive(c *gin.Context) {
	packages, err := h.packageUseCase.ListActive()
	if err != nil {
		h.logger.Error("Failed to list packages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages, "count": len(packages)})
}

// List godoc
// @Summary      List all packages including inactive (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	packages, err := h.packageUseCase.List()
	if err != nil {
		h.logger.Error("Failed to list packages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages, "count": len(packages)})
}

// Create godoc
// @Summary      Create a listing package (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PackageRequest true "Package details"
// @Success      201  {object}  entity.ListingPackage
// @Failure      400  {object}  map[string]string
// @Router       /admin/packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.packageUseCase.Create(packageFromRequest(req))
	if err != nil {
		h.respondPackageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// Update godoc
// @Summary      Update a listing package (admin)
// @Description  Edits apply to future orders only; existing orders keep their snapshot
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Package ID"
// @Param        request body PackageRequest true "Package details"
// @Success      200  {object}  entity.ListingPackage
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/packages/{id} [put]
func (h *PackageHandler) Update(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg := packageFromRequest(req)
	pkg.ID = c.Param("id")

	updated, err := h.packageUseCase.Update(pkg)
	if err != nil {
		h.respondPackageError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Deactivate godoc
// @Summary      Deactivate a listing package (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Package ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/packages/{id} [delete]
func (h *PackageHandler) Deactivate(c *gin.Context) {
	if err := h.packageUseCase.Deactivate(c.Param("id")); err != nil {
		h.respondPackageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deactivated"})
}

func packageFromRequest(req PackageRequest) *entity.ListingPackage {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &entity.ListingPackage{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ListingLimit: req.ListingLimit,
		DurationDays: req.DurationDays,
		Type:         entity.PackageType(req.Type),
		IsActive:     active,
	}
}

func (h *PackageHandler) respondPackageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPackageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidPackage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Package operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
