package handler

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"siteapi/internal/cache"
	"siteapi/internal/config"
	"siteapi/internal/repository"
	"siteapi/internal/service"
)

// previewCookie is the HTTP-only cookie that switches page handlers
// into draft mode.
const previewCookie = "__preview"

// Deps collects everything the routes need. Optional integrations are
// nil when not configured; the routes degrade rather than fail.
type Deps struct {
	DB          *sql.DB       // nil disables the submission archive and its health check
	Redis       *redis.Client // nil when the in-process cache is used
	Cache       cache.PageCache
	Resolver    service.PageResolver
	Contact     service.ContactService
	Revalidator service.Revalidator
	Assets      service.AssetService // nil disables the asset mirror
	Submissions repository.SubmissionRepository
	Secrets     config.SecretsConfig
	SiteURL     string

	// ContactLimiter is applied to POST /api/contact only.
	ContactLimiter fiber.Handler
}

// secretMatches compares a presented secret against the configured one
// in constant time. An unconfigured secret matches nothing.
func secretMatches(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// isDraft reports whether the request carries a valid preview cookie.
func (d Deps) isDraft(c *fiber.Ctx) bool {
	return secretMatches(c.Cookies(previewCookie), d.Secrets.Preview)
}

// fromCache serves a cached payload for key if one exists. Draft
// requests never read the cache, so editors always see fresh content.
func (d Deps) fromCache(c *fiber.Ctx, key string, draft bool) bool {
	if draft || d.Cache == nil {
		return false
	}
	payload, err := d.Cache.Get(c.UserContext(), key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("cache read failed for %s: %v", key, err)
		}
		return false
	}
	c.Set("X-Cache", "HIT")
	c.Type("json")
	_ = c.Send(payload)
	return true
}

// respond marshals v, stores it under key (unless draft), and sends it.
func (d Deps) respond(c *fiber.Ctx, key string, draft bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	if !draft && d.Cache != nil {
		if err := d.Cache.Set(c.UserContext(), key, payload); err != nil {
			log.Printf("cache write failed for %s: %v", key, err)
		}
	}
	c.Set("X-Cache", "MISS")
	return c.Type("json").Send(payload)
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks configured dependencies only.
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.DB != nil {
			if err := d.DB.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		if d.Redis != nil {
			if err := d.Redis.Ping(ctx).Err(); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	registerPageRoutes(app, d)
	registerContactRoutes(app, d)
	registerRevalidateRoutes(app, d)
	registerPreviewRoutes(app, d)
	registerAssetRoutes(app, d)
}

func registerPageRoutes(app *fiber.App, d Deps) {
	app.Get("/api/pages/services", func(c *fiber.Ctx) error {
		draft := d.isDraft(c)
		if d.fromCache(c, "/services", draft) {
			return nil
		}
		pages, err := d.Resolver.Services(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return d.respond(c, "/services", draft, fiber.Map{"items": pages})
	})

	app.Get("/api/pages/services/:slug", func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		draft := d.isDraft(c)
		key := "/services/" + slug
		if d.fromCache(c, key, draft) {
			return nil
		}
		res, err := d.Resolver.ResolveService(c.UserContext(), slug, draft)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrSlugRequired) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "page not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return d.respond(c, key, draft, res)
	})

	app.Get("/api/pages/case-studies", func(c *fiber.Ctx) error {
		draft := d.isDraft(c)
		if d.fromCache(c, "/case-studies", draft) {
			return nil
		}
		studies, err := d.Resolver.CaseStudies(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return d.respond(c, "/case-studies", draft, fiber.Map{"items": studies})
	})

	app.Get("/api/pages/case-studies/:slug", func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		draft := d.isDraft(c)
		key := "/case-studies/" + slug
		if d.fromCache(c, key, draft) {
			return nil
		}
		res, err := d.Resolver.ResolveCaseStudy(c.UserContext(), slug, draft)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrSlugRequired) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "page not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return d.respond(c, key, draft, res)
	})

	app.Get("/api/pages/about-us", func(c *fiber.Ctx) error {
		draft := d.isDraft(c)
		if d.fromCache(c, "/about-us", draft) {
			return nil
		}
		page, err := d.Resolver.About(c.UserContext(), draft)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "page not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return d.respond(c, "/about-us", draft, page)
	})

	app.Get("/api/categories", func(c *fiber.Ctx) error {
		draft := d.isDraft(c)
		if d.fromCache(c, "/categories", draft) {
			return nil
		}
		cats, err := d.Resolver.Categories(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return d.respond(c, "/categories", draft, fiber.Map{"items": cats})
	})
}

func registerContactRoutes(app *fiber.App, d Deps) {
	handlers := make([]fiber.Handler, 0, 2)
	if d.ContactLimiter != nil {
		handlers = append(handlers, d.ContactLimiter)
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		var in service.ContactInput
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		res, err := d.Contact.Submit(c.UserContext(), in)
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"errors": verr.Fields,
				})
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"ok":            true,
			"submission_id": res.SubmissionID,
			"persisted":     res.Persisted,
			"archived":      res.Archived,
			"notified":      res.Notified,
		})
	})
	app.Post("/api/contact", handlers...)

	app.Get("/api/submissions", func(c *fiber.Ctx) error {
		if !secretMatches(c.Get("X-Admin-Token"), d.Secrets.AdminToken) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		}
		if d.Submissions == nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "submission archive not configured")
		}

		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := d.Submissions.List(c.UserContext(), repository.PageQuery{Limit: limit, Offset: offset})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	})
}

func registerRevalidateRoutes(app *fiber.App, d Deps) {
	app.Post("/api/revalidate", func(c *fiber.Ctx) error {
		if !secretMatches(c.Query("secret"), d.Secrets.Revalidate) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
		}

		var body struct {
			Type string `json:"type"`
			Slug string `json:"slug"`
		}
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "error revalidating")
		}

		if _, err := d.Revalidator.Revalidate(c.UserContext(), body.Type, body.Slug); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "error revalidating")
		}

		return c.JSON(fiber.Map{
			"revalidated": true,
			"now":         time.Now().UnixMilli(),
			"type":        body.Type,
			"slug":        body.Slug,
		})
	})
}

func registerPreviewRoutes(app *fiber.App, d Deps) {
	app.Get("/api/preview", func(c *fiber.Ctx) error {
		if !secretMatches(c.Query("secret"), d.Secrets.Preview) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
		}

		c.Cookie(&fiber.Cookie{
			Name:     previewCookie,
			Value:    d.Secrets.Preview,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})

		slug := strings.TrimPrefix(c.Query("slug"), "/")
		return c.Redirect(d.SiteURL+"/"+slug, fiber.StatusTemporaryRedirect)
	})

	app.Get("/api/preview/disable", func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     previewCookie,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Path:     "/",
		})
		return c.Redirect(d.SiteURL, fiber.StatusTemporaryRedirect)
	})
}

func registerAssetRoutes(app *fiber.App, d Deps) {
	app.Get("/api/assets/:ref", func(c *fiber.Ctx) error {
		if d.Assets == nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "asset mirror not configured")
		}

		url, err := d.Assets.MirrorURL(c.UserContext(), c.Params("ref"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "asset not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Redirect(url, fiber.StatusTemporaryRedirect)
	})
}
