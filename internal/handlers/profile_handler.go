package handlers

import (
	"errors"

	"linkbio/internal/repositories"
	"linkbio/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileHandler serves the public, unauthenticated profile read path.
type ProfileHandler struct {
	profileService *services.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public profile route. It must run after every
// other /api route so the :name wildcard cannot shadow them.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/:name", h.HandleGetByName)
}

// HandleGetByName resolves a username to its public profile.
func (h *ProfileHandler) HandleGetByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid or missing name parameter",
		})
	}

	profile, err := h.profileService.GetByName(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		h.logger.Error("failed to fetch profile", zap.String("username", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching user",
		})
	}

	return c.JSON(profile)
}
