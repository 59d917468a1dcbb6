package handlers

import (
	"errors"
	"strconv"

	"linkbio/internal/middleware"
	"linkbio/internal/repositories"
	"linkbio/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LinkHandler handles HTTP requests for the authenticated link collection.
type LinkHandler struct {
	linkService *services.LinkService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(linkService *services.LinkService, logger *zap.Logger) *LinkHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkHandler{
		linkService: linkService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// RegisterRoutes registers the link routes with the Fiber app. The router is
// expected to carry the auth middleware.
func (h *LinkHandler) RegisterRoutes(router fiber.Router) {
	linkRoutes := router.Group("/links")
	linkRoutes.Get("/", h.HandleList)
	linkRoutes.Post("/", h.HandleCreate)
	linkRoutes.Patch("/order", h.HandleSaveOrder)
	linkRoutes.Delete("/:linkId", h.HandleDelete)
}

// userID pulls the id the auth middleware resolved into request locals.
func userID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(middleware.UserIDKey).(uint)
	return id, ok
}

// CreateLinkRequest represents the request body for link creation.
type CreateLinkRequest struct {
	Title    string `json:"title" validate:"required,max=50"`
	URL      string `json:"url" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,max=50"`
}

// HandleCreate creates a new link owned by the authenticated user.
func (h *LinkHandler) HandleCreate(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "URL and Title are required",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "URL and Title are required",
		})
	}

	link, err := h.linkService.CreateLink(uid, req.Title, req.URL, req.Platform)
	if err != nil {
		h.logger.Error("failed to create link", zap.Uint("user_id", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating link",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// HandleList returns the authenticated user's links in display order.
func (h *LinkHandler) HandleList(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	links, err := h.linkService.ListLinks(uid)
	if err != nil {
		h.logger.Error("failed to list links", zap.Uint("user_id", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching links",
		})
	}

	return c.JSON(links)
}

// HandleDelete removes one of the authenticated user's links. The lookup 404s
// only for ids that do not exist at all; the delete itself is ownership-scoped.
func (h *LinkHandler) HandleDelete(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	linkID, err := strconv.ParseUint(c.Params("linkId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Link not found",
		})
	}

	link, err := h.linkService.DeleteLink(uid, uint(linkID))
	if err != nil {
		if errors.Is(err, repositories.ErrLinkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Link not found",
			})
		}
		h.logger.Error("failed to delete link", zap.Uint("user_id", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting link",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Link deleted successfully",
		"link":    link,
	})
}

// SaveOrderRequest represents the request body for the bulk reorder.
type SaveOrderRequest struct {
	OrderedLinkIDs []repositories.LinkOrder `json:"orderedLinkIds" validate:"required"`
}

// HandleSaveOrder atomically applies a full reordering of the user's links.
func (h *LinkHandler) HandleSaveOrder(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req SaveOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid link IDs",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid link IDs",
		})
	}

	if err := h.linkService.SaveOrder(uid, req.OrderedLinkIDs); err != nil {
		if errors.Is(err, services.ErrInvalidLinkSet) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid link IDs",
			})
		}
		h.logger.Error("failed to save link order", zap.Uint("user_id", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error saving links order",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Links order saved successfully",
	})
}
