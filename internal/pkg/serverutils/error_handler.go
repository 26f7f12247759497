package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reliefconnect-ai-be/pkg/ai/parser"
	"reliefconnect-ai-be/pkg/ai/pipeline"
	"reliefconnect-ai-be/pkg/llm"
	"reliefconnect-ai-be/pkg/search"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into
// the response envelope. Caller mistakes map to 400; failures of the AI
// backends (unreachable, non-JSON output, schema violations) map to 502
// since the service itself is healthy but its upstream is not.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, formatValidationErrors(validationErrs)))
		}

		var parseErr *parser.ParseError
		var schemaErr *pipeline.SchemaError
		var llmErr *llm.ProviderError
		var searchErr *search.ProviderError
		if errors.As(err, &parseErr) || errors.As(err, &schemaErr) ||
			errors.As(err, &llmErr) || errors.As(err, &searchErr) {
			return ctx.Status(fiber.StatusBadGateway).
				JSON(ErrorResponse(fiber.StatusBadGateway, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
