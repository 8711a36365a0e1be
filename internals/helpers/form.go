package helper

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// ParseForm collects the POST body args (urlencoded or multipart fields)
// into url.Values so step validators stay independent of fiber.
func ParseForm(c *fiber.Ctx) url.Values {
	form := url.Values{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		form.Add(string(key), string(value))
	})
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for key, values := range mf.Value {
			for _, v := range values {
				form.Add(key, v)
			}
		}
	}
	return form
}
