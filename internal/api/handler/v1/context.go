package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/techforum/engagement-api/internal/api/handler/v1/response"
	"github.com/techforum/engagement-api/internal/domain"
)

// userContextKey must match what the authenticator middleware sets.
const userContextKey = "authedUser"

func getUserFromContext(ctx *gin.Context) (domain.User, *response.Err) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	user, ok := value.(domain.User)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	return user, nil
}
