package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bielsasys/pedidos-api/internal/application/auth"
	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/pkg/jwt"
)

// AuthHandler maneja login de admin, registro/login de clientes y verificación de tokens.
type AuthHandler struct {
	uc        *auth.AuthUseCase
	jwtSecret string
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, jwtSecret string) *AuthHandler {
	return &AuthHandler{uc: uc, jwtSecret: jwtSecret}
}

// AdminLogin godoc
// @Summary      Iniciar sesión de administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "username, password"
// @Success      200   {object}  dto.AdminLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdminLogin(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario o contraseña incorrectos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AdminCheck godoc
// @Summary      Verificar token de administrador
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TokenCheckResponse
// @Failure      401  {object}  dto.TokenCheckResponse
// @Router       /api/auth/check [get]
func (h *AuthHandler) AdminCheck(c *fiber.Ctx) error {
	claims := h.verify(c)
	if claims == nil || claims.Role != jwt.RoleAdmin {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.TokenCheckResponse{Valid: false})
	}
	return c.JSON(dto.TokenCheckResponse{Valid: true, Username: claims.Username})
}

// ClientRegister godoc
// @Summary      Registrar cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterClientRequest  true  "name, email, password..."
// @Success      201   {object}  dto.ClientSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients/register [post]
func (h *AuthHandler) ClientRegister(c *fiber.Ctx) error {
	var in dto.RegisterClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email y password son requeridos"})
	}
	out, err := h.uc.RegisterCliente(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email y password son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClientLogin godoc
// @Summary      Iniciar sesión de cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientLoginRequest  true  "email, password"
// @Success      200   {object}  dto.ClientSessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/clients/login [post]
func (h *AuthHandler) ClientLogin(c *fiber.Ctx) error {
	var in dto.ClientLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.LoginCliente(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		case errors.Is(err, domain.ErrClienteRechazado):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "REJECTED", Message: "cuenta rechazada, contacta con el administrador"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ClientCheck godoc
// @Summary      Verificar token de cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TokenCheckResponse
// @Failure      401  {object}  dto.TokenCheckResponse
// @Router       /api/clients/check [get]
func (h *AuthHandler) ClientCheck(c *fiber.Ctx) error {
	claims := h.verify(c)
	if claims == nil || claims.Role != jwt.RoleCliente {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.TokenCheckResponse{Valid: false})
	}
	return c.JSON(dto.TokenCheckResponse{Valid: true, ClientID: claims.ClientID, Email: claims.Email})
}

// verify extrae y valida el Bearer token; nil si falta o no es válido.
func (h *AuthHandler) verify(c *fiber.Ctx) *jwt.Claims {
	authHeader := c.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return nil
	}
	claims, err := jwt.Parse(h.jwtSecret, strings.TrimSpace(authHeader[len(prefix):]))
	if err != nil {
		return nil
	}
	return claims
}
