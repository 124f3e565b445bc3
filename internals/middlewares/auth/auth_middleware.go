// file: internals/middlewares/auth/auth_middleware.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/configs"
)

// AuthMiddleware valida el Bearer token y deja user_id y role en Locals.
// La autorización fina (dueño del recurso, rol) queda en cada handler.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secret := configs.JWTSecret
		if secret == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token inválido o expirado")
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().After(time.Unix(int64(exp), 0).Add(30 * time.Second)) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expirado")
			}
		}

		if uid, ok := claims["user_id"].(string); ok && uid != "" {
			c.Locals("user_id", uid)
		} else {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Falta user_id")
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		if cookie := c.Cookies("token"); cookie != "" {
			return cookie, nil
		}
		return "", fmt.Errorf("falta el header Authorization")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("formato de Authorization inválido")
	}
	return strings.TrimSpace(parts[1]), nil
}
