package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rajtharani77/BlackBuck-pro/internal/policy"
	"github.com/rajtharani77/BlackBuck-pro/internal/types"
)

func CurrentIdentity(ctx *gin.Context) (policy.Identity, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return policy.Identity{}, fmt.Errorf("user not authenticated")
	}

	identity, ok := value.(policy.Identity)

	if !ok {
		return policy.Identity{}, fmt.Errorf("invalid user type in context")
	}

	return identity, nil
}
