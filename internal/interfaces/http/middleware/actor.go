package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/utilityboard/backend/internal/infrastructure/logger"
)

// ActorIDKey is the gin context key holding the acting operator's ID
const ActorIDKey = "actor_id"

// ActorHeader is the request header carrying the operator identity.
// Authentication happens at the gateway; this service trusts the header.
const ActorHeader = "X-Actor-ID"

// ActorIdentity extracts the operator ID from the X-Actor-ID header and
// stores it in the gin context when it is a valid UUID. Handlers that
// require an actor reject the request themselves. The ID also travels
// down the request context so log entries carry the acting operator.
func ActorIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(ActorHeader); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(ActorIDKey, id)
				c.Request = c.Request.WithContext(
					logger.WithActorID(c.Request.Context(), id.String()))
			}
		}
		c.Next()
	}
}

// GetActorID returns the actor ID stored by ActorIdentity, or uuid.Nil
// and false when the request carried no valid identity.
func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ActorIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
