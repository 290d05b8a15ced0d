package handler

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"drives3/docs"
	"drives3/internal/http/middleware"
	"drives3/internal/service"
)

// Services bundles the use cases the HTTP surface exposes.
type Services struct {
	Auth    service.AuthService
	Buckets service.BucketService
	Objects service.ObjectService
	Presign service.PresignService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
//
// Fixed paths are registered before the catch-all /:bucket routes; Fiber
// matches in registration order. publicBaseURL prefixes presigned URLs; when
// empty the request's own scheme and host are used.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, publicBaseURL string) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/swagger/*", SwaggerUI())

	app.Get("/oauth/login", OAuthLogin(svc.Auth))
	app.Get("/oauth/callback", OAuthCallback(svc.Auth))

	app.Get("/public/:bucket/:object", ServePublic(svc.Presign))

	auth := middleware.RequireAuth(svc.Auth)

	app.Post("/presign/:bucket/:object", auth, IssuePresign(svc.Presign, publicBaseURL))
	app.Delete("/presign/:bucket/:object", auth, RevokePresign(svc.Presign))

	app.Get("/", auth, ListBuckets(svc.Buckets))
	app.Put("/:bucket", auth, CreateBucket(svc.Buckets))
	app.Delete("/:bucket", auth, DeleteBucket(svc.Buckets))
	app.Get("/:bucket", auth, ListObjects(svc.Objects))

	app.Put("/:bucket/:object", auth, PutObject(svc.Objects))
	app.Get("/:bucket/:object", auth, GetObject(svc.Objects))
	app.Delete("/:bucket/:object", auth, DeleteObject(svc.Objects))
}

// HealthCheck checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// SwaggerUI serves the API docs with the host and scheme of the request.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
