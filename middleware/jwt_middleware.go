package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	apimodels "huntflow-sync/models/api"
)

const ClaimsKey = "admin"

// AuthorizationRequired HS256 токен администратора
func AuthorizationRequired(secret string) fiber.Handler {
	if secret == "" {
		log.Warn("Не задан JWT_SECRET, административное api недоступно")
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		}
	}
	return jwtware.New(jwtware.Config{
		Claims:     jwt.MapClaims{},
		ContextKey: ClaimsKey,
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}

// GetSubject идентификатор администратора из токена
func GetSubject(c *fiber.Ctx) string {
	token, ok := c.Locals(ClaimsKey).(*jwt.Token)
	if !ok {
		return ""
	}
	subject, _ := token.Claims.GetSubject()
	return subject
}
