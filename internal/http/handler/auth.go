package handler

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"

	"drives3/internal/naming"
	"drives3/internal/service"
)

const (
	stateCookie    = "oauth_state"
	stateCookieTTL = 10 * time.Minute
)

// OAuthLogin godoc
// @Summary      Start Google sign-in
// @Description  Redirects to the Google consent screen. A state cookie guards the callback.
// @Tags         auth
// @Success      302
// @Router       /oauth/login [get]
func OAuthLogin(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := naming.RandomHex(16)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		c.Cookie(&fiber.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/oauth",
			MaxAge:   int(stateCookieTTL.Seconds()),
			HTTPOnly: true,
			Secure:   c.Protocol() == "https",
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect(svc.LoginURL(state), fiber.StatusFound)
	}
}

// OAuthCallback godoc
// @Summary      Finish Google sign-in
// @Description  Exchanges the authorization code and returns a bearer token for this API.
// @Tags         auth
// @Produce      json
// @Param        code   query  string  true  "authorization code"
// @Param        state  query  string  true  "state echoed by Google"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorPayload
// @Router       /oauth/callback [get]
func OAuthCallback(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := c.Cookies(stateCookie)
		c.Cookie(&fiber.Cookie{Name: stateCookie, Path: "/oauth", Expires: time.Unix(1, 0), HTTPOnly: true})

		if c.Query("error") != "" {
			return writeError(c, fiber.StatusUnauthorized, "OAUTH_DENIED", "sign-in was not granted")
		}
		state := c.Query("state")
		if state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
			return writeError(c, fiber.StatusUnauthorized, "INVALID_STATE", "sign-in state mismatch")
		}

		token, err := svc.Callback(c.UserContext(), c.Query("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"accessToken": token})
	}
}
