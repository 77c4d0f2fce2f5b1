package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arcana-edu/tarot-lms-api/internal/service"
	"github.com/arcana-edu/tarot-lms-api/internal/utils"
)

// UserHandler manages user endpoints, including the authenticated profile.
type UserHandler struct {
	users    service.UserService
	identity service.IdentityService
	logger   zerolog.Logger
}

// NewUserHandler builds a user handler instance.
func NewUserHandler(users service.UserService, identity service.IdentityService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		identity: identity,
		logger:   logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/me", h.me)
	router.Get("/:id", h.get)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

// me resolves the caller from token claims, provisioning a record on first
// sight so clients never need a separate registration call.
func (h *UserHandler) me(c *fiber.Ctx) error {
	claims, ok := externalClaimsFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	user, err := h.identity.ResolveOrProvision(c.Context(), claims)
	if err != nil {
		if errors.Is(err, service.ErrMissingSubject) {
			return utils.SendError(c, fiber.StatusUnauthorized, "token missing subject")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", user)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
