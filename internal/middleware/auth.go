package middleware

import (
	"context"
	"strconv"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Token issuer/audience values checked on every verification.
const (
	TokenIssuer   = "inkwell-api"
	TokenAudience = "inkwell-client"
)

// AuthRequired enforces authentication for protected routes. It verifies the
// bearer credential and resolves it to an identity before any handler or
// store is touched; the resolved user ID and username are stored in Locals
// ("userID", "username") and the request context, never in global state.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, username, err := VerifyToken(cfg, tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		c.Locals("userID", userID)
		c.Locals("username", username)
		c.SetUserContext(context.WithValue(c.UserContext(), UsernameKey, username))

		return c.Next()
	}
}

// VerifyToken parses and validates a signed token, returning the user ID and
// username it identifies. It returns an UNAUTHORIZED AppError on any failure.
func VerifyToken(cfg *config.Config, tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return 0, "", models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return 0, "", models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != TokenAudience {
		return 0, "", models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", models.NewUnauthorizedError("Invalid subject claim")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, "", models.NewUnauthorizedError("Invalid user ID in token")
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return 0, "", models.NewUnauthorizedError("Invalid username claim")
	}

	// JTI must look real when present; full replay tracking would need Redis.
	if jti, exists := claims["jti"].(string); exists && jti != "" {
		if len(jti) < 10 {
			return 0, "", models.NewUnauthorizedError("Invalid token ID")
		}
	}

	return uint(userID), username, nil
}

// OptionalIdentity attempts to resolve the caller's identity from the
// Authorization header but does not enforce it. Read endpoints use it to
// personalize computed fields (e.g. Post.Bookmarked) for logged-in callers.
func OptionalIdentity(cfg *config.Config, c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	_, username, err := VerifyToken(cfg, parts[1])
	if err != nil {
		return "", false
	}
	return username, true
}
