package middleware

import (
	"context"
	"net/http"
	"strings"

	"termcompass/models"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenChecker confirms that a token is still the live one for its account.
type TokenChecker interface {
	CheckToken(ctx context.Context, token string) (*models.Account, error)
}

// JWTAuthMiddleware resolves the bearer token into the account id and category. With optional set,
// requests without a usable token continue anonymously; otherwise they are rejected with 401.
// A nil checker trusts the token's own claims.
func JWTAuthMiddleware(checker TokenChecker, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func(msg string) {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: msg, Code: "unauthenticated"})
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			reject("Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			reject("Invalid token")
			return
		}
		accountID, category, email := claims.Subject, claims.Category, claims.Email

		if checker != nil {
			acc, err := checker.CheckToken(c.Request.Context(), tokenString)
			if err != nil {
				getLogger(c).Debug("Token rejected", zap.Error(err))
				reject("Token mismatch or account not found")
				return
			}
			accountID, category, email = acc.ID, acc.Category, acc.Email
		}

		c.Set(utils.CtxAccountID, accountID)
		c.Set(utils.CtxCategory, category)
		c.Set(utils.CtxEmail, email)
		c.Next()
	}
}
