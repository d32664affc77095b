package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalRole     = "role"
	LocalUsername = "username"
	LocalClientID = "client_id"
	LocalEmail    = "email"
)

// AuthMiddleware valida el Bearer Token y extrae los claims a c.Locals.
// Token ausente, malformado, con firma incorrecta o expirado responden todos
// 401; el llamante no distingue "expirado" de "falsificado".
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalClientID, claims.ClientID)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// RequireRole autoriza la petición solo si el rol del token está entre los
// permitidos. Debe usarse DESPUÉS de AuthMiddleware. Un token sin claim de rol
// es 401; un rol válido pero no permitido es 403, y el handler no se ejecuta.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetUsername devuelve el username del admin autenticado.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetClientID devuelve el ID del cliente autenticado (0 si no es cliente).
func GetClientID(c *fiber.Ctx) int64 {
	n, _ := c.Locals(LocalClientID).(int64)
	return n
}

// GetEmail devuelve el email del cliente autenticado.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
