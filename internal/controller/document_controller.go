package controller

import (
	"errors"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/pkg/serverutils"
	"chameleon-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Copy(ctx *fiber.Ctx) error
}

type documentController struct {
	service     service.IDocumentService
	authService service.IAuthService
	jwtAuth     *serverutils.JwtAuth
}

func NewDocumentController(service service.IDocumentService, authService service.IAuthService, jwtAuth *serverutils.JwtAuth) IDocumentController {
	return &documentController{service: service, authService: authService, jwtAuth: jwtAuth}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document")
	h.Post("/copy", c.jwtAuth.Optional, c.Copy)
}

func (c *documentController) Copy(ctx *fiber.Ctx) error {
	token, _ := ctx.Locals("token").(string)
	user := c.authService.CurrentUser(ctx.UserContext(), token)
	if user == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, service.ErrAuthRequired.Error()))
	}

	var req dto.CopyDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Copy(ctx.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success copy document", res))
}
