package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

// OrderUseCase ciclo de vida del pedido: colocación, consulta y transición de
// estado. Las líneas se copian tal cual llegan (snapshot del catálogo en el
// momento de comprar); el total se calcula aquí, nunca se acepta del cliente.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo}
}

// Place coloca un pedido para el cliente autenticado. Rechaza pedidos sin
// líneas o con cantidades/precios no positivos. La aprobación del cliente la
// comprueba el repositorio dentro del mismo ciclo de escritura (pendiente y
// rechazado producen errores distintos), que además copia sus datos
// desnormalizados. El total es la suma de precio × cantidad, redondeada a dos
// decimales.
func (uc *OrderUseCase) Place(clientID int64, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrPedidoVacio
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() || !it.Price.IsPositive() {
			return nil, domain.ErrLineaInvalida
		}
		item := entity.OrderItem{
			Product:  it.Product,
			Price:    it.Price,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	now := time.Now()
	order := &entity.Order{
		ClientID:     clientID,
		Items:        items,
		Total:        total.Round(2),
		Note:         in.Note,
		DeliveryDate: in.DeliveryDate,
		Estado:       entity.PedidoPendiente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Transition aplica un cambio de estado. Un estado fuera de la enumeración es
// error de validación; un estado válido pero no alcanzable desde el actual es
// conflicto. En ambos casos el pedido queda intacto. La adyacencia se valida
// dentro de Mutate, contra el estado que de verdad va a sobrescribirse: dos
// transiciones concurrentes nunca se validan contra el mismo estado previo.
func (uc *OrderUseCase) Transition(orderID int64, newEstado string) (*dto.OrderResponse, error) {
	if !entity.EstadoPedidoValido(newEstado) {
		return nil, domain.ErrEstadoInvalido
	}
	order, err := uc.orderRepo.Mutate(orderID, func(o *entity.Order) error {
		if !entity.PuedeTransicionar(o.Estado, newEstado) {
			return domain.ErrTransicionInvalida
		}
		o.Estado = newEstado
		o.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// GetByID devuelve un pedido, o nil si no existe.
func (uc *OrderUseCase) GetByID(id int64) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// ListAll devuelve todos los pedidos, los más recientes primero.
func (uc *OrderUseCase) ListAll() ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.List()
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListByClient devuelve los pedidos de un cliente, los más recientes primero.
func (uc *OrderUseCase) ListByClient(clientID int64) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			Product:  it.Product,
			Price:    it.Price,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		ClientCompany: o.ClientCompany,
		ClientEmail:   o.ClientEmail,
		Items:         items,
		Total:         o.Total,
		Note:          o.Note,
		DeliveryDate:  o.DeliveryDate,
		Estado:        o.Estado,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
