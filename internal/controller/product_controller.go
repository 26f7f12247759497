package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reliefconnect-ai-be/internal/pkg/serverutils"
	"reliefconnect-ai-be/internal/service"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type productController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) IProductController {
	return &productController{
		productService: productService,
	}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("products", c.List)
}

// List serves the relief catalog. An optional comma-separated "ids" query
// narrows the result to specific products.
func (c *productController) List(ctx *fiber.Ctx) error {
	var ids []uuid.UUID
	if raw := ctx.Query("ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid product id: "+part)
			}
			ids = append(ids, id)
		}
	}

	res, err := c.productService.List(ctx.Context(), ids)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Relief catalog", res))
}
