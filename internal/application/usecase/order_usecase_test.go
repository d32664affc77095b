package usecase_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/application/usecase"
	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/infrastructure/filestore"
)

type orderFixture struct {
	uc         *usecase.OrderUseCase
	orderRepo  *filestore.OrderRepo
	clientRepo *filestore.ClientRepo
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	store, err := filestore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	orderRepo := filestore.NewOrderRepository(store)
	clientRepo := filestore.NewClientRepository(store)
	return &orderFixture{
		uc:         usecase.NewOrderUseCase(orderRepo),
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
	}
}

func (f *orderFixture) addClient(t *testing.T, estado string) *entity.Client {
	t.Helper()
	c := &entity.Client{
		Name:    "Frutería Sol",
		Company: "Frutería Sol SL",
		Email:   "sol@fruterias.es",
		Estado:  estado,
	}
	require.NoError(t, f.clientRepo.Create(c))
	return c
}

func lineas(items ...dto.OrderItemRequest) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{Items: items}
}

func linea(product string, price, qty float64) dto.OrderItemRequest {
	return dto.OrderItemRequest{
		Product:  product,
		Price:    decimal.NewFromFloat(price),
		Quantity: decimal.NewFromFloat(qty),
		Unit:     "kg",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Place
// ──────────────────────────────────────────────────────────────────────────────

func TestPlace_CalculaTotalYDesnormalizaCliente(t *testing.T) {
	f := newOrderFixture(t)
	c := f.addClient(t, entity.ClienteActivo)

	out, err := f.uc.Place(c.ID, dto.PlaceOrderRequest{
		Items:        []dto.OrderItemRequest{linea("Tomate Pera", 1.20, 2), linea("Fresas Huelva", 2.20, 10)},
		Note:         "entregar por la mañana",
		DeliveryDate: "2026-09-01",
	})
	require.NoError(t, err)

	// 1.20*2 + 2.20*10 = 24.40
	assert.True(t, out.Total.Equal(decimal.NewFromFloat(24.40)), "total = %s", out.Total)
	assert.Equal(t, entity.PedidoPendiente, out.Estado, "todo pedido nace pendiente")
	assert.Equal(t, c.ID, out.ClientID)
	assert.Equal(t, "Frutería Sol", out.ClientName)
	assert.Equal(t, "Frutería Sol SL", out.ClientCompany)
	assert.Equal(t, "sol@fruterias.es", out.ClientEmail)
	assert.Equal(t, "entregar por la mañana", out.Note)
	assert.Len(t, out.Items, 2)
}

func TestPlace_RedondeaSoloElTotal(t *testing.T) {
	f := newOrderFixture(t)
	c := f.addClient(t, entity.ClienteActivo)

	// 0.333*3 = 0.999 → 1.00 tras redondear el total
	out, err := f.uc.Place(c.ID, lineas(linea("Limón Fino Murcia", 0.333, 3)))
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromFloat(1.00)), "total = %s", out.Total)
}

func TestPlace_PedidoSinLineas(t *testing.T) {
	f := newOrderFixture(t)
	c := f.addClient(t, entity.ClienteActivo)

	_, err := f.uc.Place(c.ID, dto.PlaceOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrPedidoVacio)
}

func TestPlace_LineaConCantidadNoPositiva(t *testing.T) {
	f := newOrderFixture(t)
	c := f.addClient(t, entity.ClienteActivo)

	_, err := f.uc.Place(c.ID, lineas(linea("Tomate Pera", 1.20, 0)))
	assert.ErrorIs(t, err, domain.ErrLineaInvalida)

	_, err = f.uc.Place(c.ID, lineas(linea("Tomate Pera", -1.20, 2)))
	assert.ErrorIs(t, err, domain.ErrLineaInvalida)

	// Nada debe haberse persistido
	list, err := f.orderRepo.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPlace_ClientePendienteNoPuedeComprar(t *testing.T) {
	f := newOrderFixture(t)
	c := f.addClient(t, entity.ClientePendiente)

	_, err := f.uc.Place(c.ID, lineas(linea("Tomate Pera", 1.20, 2)))
	assert.ErrorIs(t, err, domain.ErrClientePendiente)

	list, _ := f.orderRepo.List()
	assert.Empty(t, list, "el rechazo no debe dejar pedido persistido")
}

func TestPlace_ClienteRechazadoNoPuedeComprar(t *testing.T) {
	f := newOrderFixture(t)
	c := f.addClient(t, entity.ClienteRechazado)

	_, err := f.uc.Place(c.ID, lineas(linea("Tomate Pera", 1.20, 2)))
	assert.ErrorIs(t, err, domain.ErrClienteRechazado)
}

func TestPlace_ClienteInexistente(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.Place(999, lineas(linea("Tomate Pera", 1.20, 2)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transition
// ──────────────────────────────────────────────────────────────────────────────

func (f *orderFixture) placeOrder(t *testing.T) *dto.OrderResponse {
	t.Helper()
	c, err := f.clientRepo.GetByEmail("sol@fruterias.es")
	require.NoError(t, err)
	if c == nil {
		c = f.addClient(t, entity.ClienteActivo)
	}
	out, err := f.uc.Place(c.ID, lineas(linea("Tomate Pera", 1.20, 2)))
	require.NoError(t, err)
	return out
}

func TestTransition_FlujoCompletoHastaEntregado(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t)

	pasos := []string{
		entity.PedidoConfirmado,
		entity.PedidoEnPreparacion,
		entity.PedidoEnviado,
		entity.PedidoEntregado,
	}
	for _, estado := range pasos {
		out, err := f.uc.Transition(order.ID, estado)
		require.NoError(t, err, "transición a %s", estado)
		assert.Equal(t, estado, out.Estado)
	}
}

func TestTransition_SaltarPasosNoEstaPermitido(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t)

	_, err := f.uc.Transition(order.ID, entity.PedidoEnviado)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	// El pedido queda intacto
	got, err := f.uc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoPendiente, got.Estado)
}

func TestTransition_CancelarDesdeCualquierEstadoNoTerminal(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t)

	_, err := f.uc.Transition(order.ID, entity.PedidoConfirmado)
	require.NoError(t, err)
	_, err = f.uc.Transition(order.ID, entity.PedidoEnPreparacion)
	require.NoError(t, err)

	out, err := f.uc.Transition(order.ID, entity.PedidoCancelado)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoCancelado, out.Estado)
}

func TestTransition_EstadoTerminalEsFinal(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t)

	_, err := f.uc.Transition(order.ID, entity.PedidoCancelado)
	require.NoError(t, err)

	// Ni avanzar ni re-cancelar
	_, err = f.uc.Transition(order.ID, entity.PedidoConfirmado)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
	_, err = f.uc.Transition(order.ID, entity.PedidoCancelado)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestTransition_EstadoFueraDeEnumeracion(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t)

	_, err := f.uc.Transition(order.ID, "volando")
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)

	got, _ := f.uc.GetByID(order.ID)
	assert.Equal(t, entity.PedidoPendiente, got.Estado, "un estado inválido no toca el pedido")
}

func TestTransition_PedidoInexistente(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.Transition(999, entity.PedidoConfirmado)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_ConcurrentesValidanContraElEstadoReal(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t)

	// pendiente→confirmado solo puede ganarla una goroutine; las demás deben
	// validar contra "confirmado" ya escrito, no contra la lectura obsoleta.
	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Transition(order.ID, entity.PedidoConfirmado)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
		}
	}
	assert.Equal(t, 1, ok, "solo una transición pendiente→confirmado puede aplicarse")

	got, err := f.uc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoConfirmado, got.Estado)
}

func TestTransition_CancelarYConfirmarALaVez(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t)

	var errCancel, errConfirm error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errCancel = f.uc.Transition(order.ID, entity.PedidoCancelado)
	}()
	go func() {
		defer wg.Done()
		_, errConfirm = f.uc.Transition(order.ID, entity.PedidoConfirmado)
	}()
	wg.Wait()

	got, err := f.uc.GetByID(order.ID)
	require.NoError(t, err)

	// Cancelar es legal desde pendiente y desde confirmado, así que nunca
	// falla aquí. Confirmar solo prospera si llegó antes que la cancelación;
	// en ambos desenlaces válidos el estado final es cancelado.
	require.NoError(t, errCancel)
	assert.Equal(t, entity.PedidoCancelado, got.Estado)
	if errConfirm != nil {
		assert.ErrorIs(t, errConfirm, domain.ErrTransicionInvalida)
	}
}
