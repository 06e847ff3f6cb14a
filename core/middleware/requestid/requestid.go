package requestid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request and response header carrying the id.
const Header = "X-Request-Id"

// Local is the fiber locals key the id is stored under.
const Local = "request_id"

// New returns a middleware that tags every request with an id. A caller
// supplied X-Request-Id is kept so ids correlate across systems; otherwise
// a fresh UUID is generated. The id lands in the request locals and is
// echoed on the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(Local, id)
		c.Set(Header, id)
		return c.Next()
	}
}
