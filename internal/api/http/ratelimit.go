package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fusaf/role-request-service/internal/auth"
	apperrors "github.com/fusaf/role-request-service/pkg/util"
)

// RateLimit returns middleware enforcing limit requests per window, counted
// in Redis via INCR/EXPIRE. Keys by the authenticated account email when
// present, falling back to remote IP. Fails open when Redis is unavailable.
func RateLimit(rdb *redis.Client, resource string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil || limit <= 0 {
			return c.Next()
		}

		id := "ip:" + c.IP()
		if principal, ok := auth.PrincipalFromContext(c); ok && principal.Email() != "" {
			id = "acct:" + principal.Email()
		}
		key := fmt.Sprintf("rl:%s:%s", resource, id)

		cnt, err := rdb.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next()
		}
		if cnt == 1 {
			rdb.Expire(c.UserContext(), key, window)
		}
		if cnt > int64(limit) {
			return apperrors.NewTooManyRequests("rate limit exceeded")
		}
		return c.Next()
	}
}
