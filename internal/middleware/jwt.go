package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/arcana-edu/tarot-lms-api/internal/utils"
)

// AuthClaims carries the identity claims extracted from a validated token.
type AuthClaims struct {
	Subject       string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

const authClaimsKey = "auth_claims"

// JWTProtected returns a middleware that validates JWT bearer tokens and
// stores the caller's identity claims on the request context.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		auth := extractAuthClaims(claims)
		if auth.Subject == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "token missing subject")
		}
		c.Locals(authClaimsKey, auth)

		return c.Next()
	}
}

// GetAuthClaims returns the claims stored by JWTProtected, if any.
func GetAuthClaims(c *fiber.Ctx) (AuthClaims, bool) {
	if v := c.Locals(authClaimsKey); v != nil {
		if claims, ok := v.(AuthClaims); ok {
			return claims, true
		}
	}
	return AuthClaims{}, false
}

func extractAuthClaims(claims jwt.MapClaims) AuthClaims {
	auth := AuthClaims{
		Subject: stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Picture: stringClaim(claims, "picture"),
	}

	if verified, ok := claims["email_verified"]; ok {
		switch v := verified.(type) {
		case bool:
			auth.EmailVerified = v
		case string:
			auth.EmailVerified = strings.EqualFold(strings.TrimSpace(v), "true")
		}
	}

	return auth
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key]; ok {
		if str, ok := value.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}
