package controller

import (
	"errors"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidJSON      = "Invalid JSON in request body"
	msgGenerationFailed = "Failed to generate suggestion"
)

type IAutocompleteController interface {
	RegisterRoutes(r fiber.Router)
	Autocomplete(ctx *fiber.Ctx) error
	AutocompleteLegacy(ctx *fiber.Ctx) error
}

type autocompleteController struct {
	service service.IAutocompleteService
}

func NewAutocompleteController(service service.IAutocompleteService) IAutocompleteController {
	return &autocompleteController{service: service}
}

func (c *autocompleteController) RegisterRoutes(r fiber.Router) {
	r.Post("/autocomplete", c.Autocomplete)
	r.Post("/v1/autocomplete", c.AutocompleteLegacy)
}

// Autocomplete answers with its own {error[, details]} shape rather than BaseResponse.
func (c *autocompleteController) Autocomplete(ctx *fiber.Ctx) error {
	if err := c.service.Ready(); err != nil {
		return writeError(ctx, err)
	}

	var req dto.AutocompleteRequest
	if err := ctx.App().Config().JSONDecoder(ctx.Body(), &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AutocompleteErrorResponse{Error: msgInvalidJSON})
	}

	res, err := c.service.Complete(ctx.UserContext(), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *autocompleteController) AutocompleteLegacy(ctx *fiber.Ctx) error {
	if err := c.service.Ready(); err != nil {
		return writeError(ctx, err)
	}

	var req dto.LegacyAutocompleteRequest
	if err := ctx.App().Config().JSONDecoder(ctx.Body(), &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AutocompleteErrorResponse{Error: msgInvalidJSON})
	}

	res, err := c.service.CompleteLegacy(ctx.UserContext(), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(res)
}

func writeError(ctx *fiber.Ctx, err error) error {
	var inputErr *service.InputError
	var cfgErr *service.ConfigError
	var upErr *service.UpstreamError

	switch {
	case errors.As(err, &inputErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AutocompleteErrorResponse{Error: inputErr.Message})
	case errors.As(err, &cfgErr):
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.AutocompleteErrorResponse{Error: cfgErr.Message})
	case errors.As(err, &upErr):
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.AutocompleteErrorResponse{
			Error:   msgGenerationFailed,
			Details: upErr.Err.Error(),
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.AutocompleteErrorResponse{
		Error:   msgGenerationFailed,
		Details: err.Error(),
	})
}
