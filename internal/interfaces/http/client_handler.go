package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/application/usecase"
)

// ClientHandler operaciones del admin sobre clientes: listar, aprobar, rechazar.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes (admin, sin hash)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Listar clientes pendientes de aprobación (admin)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients/pending [get]
func (h *ClientHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar cliente (admin)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/approve [put]
func (h *ClientHandler) Approve(c *fiber.Ctx) error {
	return h.setEstado(c, h.uc.Approve)
}

// Reject godoc
// @Summary      Rechazar cliente (admin)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/reject [put]
func (h *ClientHandler) Reject(c *fiber.Ctx) error {
	return h.setEstado(c, h.uc.Reject)
}

func (h *ClientHandler) setEstado(c *fiber.Ctx, op func(int64) (*dto.ClientResponse, error)) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico requerido"})
	}
	out, err := op(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.JSON(out)
}
