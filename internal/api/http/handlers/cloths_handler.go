package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/winter-cloth-service/internal/api/dto"
	"github.com/spec-kit/winter-cloth-service/internal/repository"
	"github.com/spec-kit/winter-cloth-service/internal/service"
	apperrors "github.com/spec-kit/winter-cloth-service/pkg/util"
)

// ClothsHandler exposes CRUD endpoints over the winter cloth collection.
// Client errors are returned as DomainErrors; the error middleware shapes
// them into the response envelope.
type ClothsHandler struct {
	catalog *service.CatalogService
}

// NewClothsHandler constructs handler.
func NewClothsHandler(catalogService *service.CatalogService) *ClothsHandler {
	return &ClothsHandler{catalog: catalogService}
}

// List handles GET /winter-cloth. A missing or non-positive limit returns
// the whole collection.
func (h *ClothsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	docs, err := h.catalog.List(c.Context(), int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Winter cloth fetched successfully.", docs))
}

// Get handles GET /winter-cloth/:id.
func (h *ClothsHandler) Get(c *fiber.Ctx) error {
	doc, err := h.catalog.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidClothID) {
			return apperrors.NewValidationError("invalid winter cloth id")
		}
		if errors.Is(err, repository.ErrClothNotFound) {
			return apperrors.NewNotFound("winter cloth")
		}
		return err
	}
	return c.JSON(dto.OK("single winter cloth fetched successfully.", doc))
}

// Create handles POST /winter-cloth. The payload is accepted as-is, without
// any schema validation.
func (h *ClothsHandler) Create(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	insertedID, err := h.catalog.Create(c.Context(), payload)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("winter cloth created successfully.", dto.CreateResult{InsertedID: insertedID}))
}

// Delete handles DELETE /winter-cloth/:id. Deleting a missing document is
// still a success, with a zero count.
func (h *ClothsHandler) Delete(c *fiber.Ctx) error {
	count, err := h.catalog.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidClothID) {
			return apperrors.NewValidationError("invalid winter cloth id")
		}
		return err
	}
	return c.JSON(dto.OK("winter cloth deleted successfully.", dto.DeleteResult{DeletedCount: count}))
}
