package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request and response header carrying the ray ID.
const Header = "X-Ray-ID"

// LocalsKey is the fiber locals key the ray ID is stored under.
const LocalsKey = "ray_id"

// New returns a middleware that tags every request with a ray ID.
// A ray ID sent by the client is kept so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
