package controller

import (
	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/serverutils"
	"reliefconnect-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("register", c.Register)
	h.Post("login", c.Login)
	h.Get("me", serverutils.JwtMiddleware, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Registration successful", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.authService.Me(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Profile", res))
}
