package middleware

import (
	"saathi/internal/models"
	"saathi/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader echoes the server span's trace id back to the caller.
const TraceIDHeader = "X-Trace-ID"

// TracingMiddleware starts a server span per request. The span is renamed to
// the matched route pattern once routing has run, so /user/alice and /user/bob
// share one span name.
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := observability.Tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.url", c.OriginalURL()),
				attribute.String("http.client_ip", c.IP()),
				attribute.String("http.user_agent", c.Get(fiber.HeaderUserAgent)),
			),
		)
		defer span.End()

		sc := span.SpanContext()
		c.Locals("traceID", sc.TraceID().String())
		c.Locals("spanID", sc.SpanID().String())
		c.Set(TraceIDHeader, sc.TraceID().String())
		c.SetUserContext(ctx)

		err := c.Next()

		if route := c.Route(); route != nil && route.Path != "" {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
		}
		if id := observability.ExtractCorrelationID(c.UserContext()); id != "" {
			span.SetAttributes(attribute.String("correlation.id", id))
		}
		if username := c.Params("username"); username != "" {
			span.SetAttributes(attribute.String("saathi.username", username))
		}
		if communityID := c.Params("community_id"); communityID != "" {
			span.SetAttributes(attribute.String("saathi.community_id", communityID))
		}

		status := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if err != nil {
			if kind := models.KindOf(err); kind != "" {
				span.SetAttributes(attribute.String("error.kind", kind))
			}
			observability.FailSpan(span, err)
		} else if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, fiber.ErrInternalServerError.Message)
		}

		return err
	}
}
