package controller

import (
	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/serverutils"
	"reliefconnect-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	Report(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type orderController struct {
	orderService service.IOrderService
}

func NewOrderController(orderService service.IOrderService) IOrderController {
	return &orderController{
		orderService: orderService,
	}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/support/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("report", c.Report)
	h.Post("orders", c.Create)
	h.Get("orders", c.GetAll)
	h.Get("orders/:id", c.Get)
}

func (c *orderController) Report(ctx *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.orderService.Report(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Issue adjudicated", res))
}

func (c *orderController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.orderService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Order created", res))
}

func (c *orderController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	orderId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	res, err := c.orderService.Get(ctx.Context(), userId, orderId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Order details", res))
}

func (c *orderController) GetAll(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.orderService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("User orders", res))
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user id")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
	}
	return userId, nil
}
