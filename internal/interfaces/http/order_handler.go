package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/application/usecase"
	"github.com/bielsasys/pedidos-api/internal/domain"
)

// OrderHandler maneja la colocación, consulta y transición de pedidos.
type OrderHandler struct {
	uc    *usecase.OrderUseCase
	pdfUC *usecase.OrderPDFUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, pdfUC *usecase.OrderPDFUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, pdfUC: pdfUC}
}

// Place godoc
// @Summary      Colocar pedido (cliente aprobado)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "items, note, deliveryDate"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin clientId"})
	}
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Place(clientID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPedidoVacio):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_ORDER", Message: "el pedido necesita al menos una línea"})
		case errors.Is(err, domain.ErrLineaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ITEM", Message: "cantidad y precio deben ser positivos"})
		case errors.Is(err, domain.ErrClientePendiente):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PENDING_APPROVAL", Message: "cuenta pendiente de aprobación"})
		case errors.Is(err, domain.ErrClienteRechazado):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "REJECTED", Message: "cuenta rechazada"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAll godoc
// @Summary      Listar todos los pedidos (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Listar pedidos del cliente autenticado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/mine [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin clientId"})
	}
	out, err := h.uc.ListByClient(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Transicionar estado de un pedido (admin)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.ChangeOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico requerido"})
	}
	var in dto.ChangeOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Transition(id, in.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEstadoInvalido):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: fmt.Sprintf("estado desconocido: %q", in.Status)})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrTransicionInvalida):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición no permitida desde el estado actual"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar albarán del pedido en PDF (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico requerido"})
	}
	raw, err := h.pdfUC.Generate(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="pedido-%d.pdf"`, id))
	return c.Send(raw)
}
