package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CatalogCache sets cache headers for the public project catalog
// (10 minute cache; the catalog changes rarely)
func CatalogCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == "GET" && c.Response().StatusCode() == 200 {
			c.Set("Cache-Control", "public, max-age="+strconv.Itoa(600))
		}

		return err
	}
}

// NoCacheHeaders sets no-cache headers. Entitlement answers and gated URLs
// must never land in a shared cache.
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}
