package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/delivery/http/response"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/token"
)

// RequireUser authenticates a user bearer token and loads the principal
// from the repository, so deleted accounts are rejected even while their
// tokens are formally valid.
func RequireUser(tokens *token.Issuer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyBearer(c, tokens, token.KindUser)
		if !ok {
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAccountID), user.ID)
		c.Set(string(domain.KeyAccountKind), string(domain.AccountKindUser))
		c.Set(string(domain.KeyEmail), user.Email)
		c.Next()
	}
}

// RequireCompany authenticates a company bearer token.
func RequireCompany(tokens *token.Issuer, companies domain.CompanyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyBearer(c, tokens, token.KindCompany)
		if !ok {
			return
		}

		company, err := companies.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Company not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAccountID), company.ID)
		c.Set(string(domain.KeyAccountKind), string(domain.AccountKindCompany))
		c.Set(string(domain.KeyEmail), company.Email)
		c.Next()
	}
}

func verifyBearer(c *gin.Context, tokens *token.Issuer, wantKind string) (*token.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.Error(c, http.StatusUnauthorized, "Not authorized, no token", nil)
		c.Abort()
		return nil, false
	}

	claims, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Not authorized, token failed", nil)
		c.Abort()
		return nil, false
	}
	if claims.Kind != wantKind {
		response.Error(c, http.StatusUnauthorized, "Not authorized for this resource", nil)
		c.Abort()
		return nil, false
	}

	return claims, true
}
