package httpapi

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-activity-assistant/internal/assistant"
	"github.com/i474232898/weather-activity-assistant/internal/observability"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

var validate = validator.New()

// Assistant answers a free-text query.
type Assistant interface {
	Process(ctx context.Context, query string) assistant.Result
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Assistant) {
	v1 := app.Group("/api/v1", RequestID())

	v1.Post("/query", func(c *fiber.Ctx) error {
		var req queryRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		return answer(c, svc, req)
	})

	v1.Get("/query", func(c *fiber.Ctx) error {
		return answer(c, svc, queryRequest{Query: c.Query("q")})
	})
}

// queryRequest is the body of POST /api/v1/query.
type queryRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

func answer(c *fiber.Ctx, svc Assistant, req queryRequest) error {
	req.Query = strings.TrimSpace(req.Query)
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res := svc.Process(c.UserContext(), req.Query)
	return c.Status(statusFor(res.Outcome)).JSON(res)
}

func statusFor(outcome assistant.Outcome) int {
	switch outcome {
	case assistant.OutcomeComposed, assistant.OutcomeDegraded:
		return fiber.StatusOK
	case assistant.OutcomeNoLocation:
		return fiber.StatusUnprocessableEntity
	case assistant.OutcomeWeatherUnavailable:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}

// RequestID reuses the caller's X-Request-ID or generates one, echoes it
// back and stores it in the user context for logging.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.SetUserContext(observability.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}
