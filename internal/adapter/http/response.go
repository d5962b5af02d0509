package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/logger"
	"resume-builder/internal/usecase"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Message: message})
}

// fail maps service errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrDocumentNotFound):
		return respondError(c, fiber.StatusNotFound, "document not found")
	case errors.Is(err, usecase.ErrInvalidDocument):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return respondError(c, fiber.StatusInternalServerError, "internal error")
}
