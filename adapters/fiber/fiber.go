// Package fiber exposes the sandbox operation surface over HTTP. It is thin
// presentation glue: every decision, including whether an attack succeeds,
// is made by the engine.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/sandbank"
)

const defaultBasePath = "/api"

type Adapter struct {
	app      *fiber.App
	basePath string
	sb       *sandbank.Sandbank
}

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app, basePath: defaultBasePath}
}

// WithBasePath overrides the default /api prefix.
func (a *Adapter) WithBasePath(basePath string) *Adapter {
	a.basePath = basePath
	return a
}

func (a *Adapter) RegisterRoutes(sb *sandbank.Sandbank) error {
	a.sb = sb
	api := a.app.Group(a.basePath)

	// Public routes
	api.Post("/register", a.register)
	api.Post("/login", a.login)
	api.Get("/vulnerabilities", a.vulnerabilities)
	api.Get("/users/search", a.search)

	// Session-bound routes. The token travels with every call; whether it
	// is honored depends on the profile, not on this adapter.
	api.Post("/logout", a.logout)
	api.Get("/session", a.session)
	api.Post("/transfer", a.transfer)
	api.Get("/transactions", a.transactions)

	// Admin routes
	api.Post("/admin/query", a.rawQuery)
	api.Post("/admin/users/:id/promote", a.promote)
	api.Post("/admin/users/:id/demote", a.demote)
	api.Delete("/admin/users/:id", a.deleteUser)

	return nil
}

// extractToken extracts the session token from the request.
// Checks Authorization header (Bearer token) first, then falls back to cookie.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies("auth_token")
}
