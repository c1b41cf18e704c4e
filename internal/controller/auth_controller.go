package controller

import (
	"errors"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/pkg/serverutils"
	"chameleon-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	jwtAuth *serverutils.JwtAuth
}

func NewAuthController(service service.IAuthService, jwtAuth *serverutils.JwtAuth) IAuthController {
	return &authController{service: service, jwtAuth: jwtAuth}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Get("/session", c.jwtAuth.Optional, c.Session)
	h.Post("/logout", c.jwtAuth.Required, c.Logout)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

// Session reports the signed-in user, or a null user; it never fails on a bad token.
func (c *authController) Session(ctx *fiber.Ctx) error {
	token, _ := ctx.Locals("token").(string)
	return ctx.JSON(serverutils.SuccessResponse("Success get session", dto.SessionResponse{
		User: c.service.CurrentUser(ctx.UserContext(), token),
	}))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.UserContext(), serverutils.CurrentClaims(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logout successful", nil))
}
