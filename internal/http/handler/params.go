package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// pathParam returns a route parameter with percent-encoding removed, so that
// names like "my photos" match what was stored.
func pathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
