package delivery

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// setFlash hands a notice to the next page the browser is redirected to.
func setFlash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func popFlash(c *fiber.Ctx) string {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return ""
	}
	c.ClearCookie(flashCookie)

	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}
