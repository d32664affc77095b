package filestore_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/infrastructure/filestore"
)

func openStore(t *testing.T) (*filestore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := filestore.Open(path)
	require.NoError(t, err)
	return store, path
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_SiembraCatalogoInicial(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewProductRepository(store)

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 6, "el catálogo inicial tiene 6 productos")

	assert.Equal(t, "Naranja Valencia Extra", list[0].Name)
	assert.True(t, list[0].Stock)
	for i, p := range list {
		assert.Equal(t, int64(i+1), p.ID, "IDs del catálogo inicial son 1..6")
	}
}

func TestProductCreate_ContinuaTrasElCatalogo(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewProductRepository(store)

	p := &entity.Product{Name: "Pimiento Rojo", Category: "verdura", Price: decimal.NewFromFloat(1.80)}
	require.NoError(t, repo.Create(p))

	assert.Equal(t, int64(7), p.ID, "el primer producto creado va detrás del catálogo inicial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Contadores e IDs
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_NoReutilizaIDs(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewProductRepository(store)

	p := &entity.Product{Name: "Calabacín", Category: "verdura", Price: decimal.NewFromFloat(0.90)}
	require.NoError(t, repo.Create(p))
	require.Equal(t, int64(7), p.ID)

	deleted, err := repo.Delete(p.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "Calabacín", deleted.Name)

	// Segundo borrado del mismo ID: sin efecto, sin error
	again, err := repo.Delete(p.ID)
	require.NoError(t, err)
	assert.Nil(t, again)

	// El siguiente producto no recicla el ID borrado
	next := &entity.Product{Name: "Berenjena", Category: "verdura", Price: decimal.NewFromFloat(1.10)}
	require.NoError(t, repo.Create(next))
	assert.Equal(t, int64(8), next.ID, "los IDs borrados no se reutilizan")
}

func TestProductCreate_Concurrente_IDsUnicos(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewProductRepository(store)

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &entity.Product{Name: "Producto", Category: "fruta", Price: decimal.NewFromInt(1)}
			if err := repo.Create(p); err == nil {
				ids <- p.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "ID duplicado: %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia entre reaperturas
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_EstadoSobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	store, err := filestore.Open(path)
	require.NoError(t, err)
	repo := filestore.NewProductRepository(store)

	p := &entity.Product{Name: "Aguacate Hass", Category: "fruta", Price: decimal.NewFromFloat(3.50)}
	require.NoError(t, repo.Create(p))
	_, err = repo.Delete(3)
	require.NoError(t, err)

	// Reabrir desde disco
	reopened, err := filestore.Open(path)
	require.NoError(t, err)
	repo2 := filestore.NewProductRepository(reopened)

	list, err := repo2.List()
	require.NoError(t, err)
	assert.Len(t, list, 6, "6 de catálogo + 1 creado - 1 borrado")

	got, err := repo2.GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Aguacate Hass", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(3.50)))

	// El contador también sobrevive: no se recalcula de max(id)+1
	next := &entity.Product{Name: "Kiwi", Category: "fruta", Price: decimal.NewFromInt(2)}
	require.NoError(t, repo2.Create(next))
	assert.Equal(t, int64(8), next.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes: email único
// ──────────────────────────────────────────────────────────────────────────────

func TestClientCreate_EmailDuplicado(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewClientRepository(store)

	c1 := &entity.Client{Name: "Frutería Sol", Email: "sol@fruterias.es", Estado: entity.ClientePendiente}
	require.NoError(t, repo.Create(c1))
	assert.Equal(t, int64(1), c1.ID)

	// Mismo email con distinta capitalización
	c2 := &entity.Client{Name: "Otra", Email: "SOL@Fruterias.es", Estado: entity.ClientePendiente}
	err := repo.Create(c2)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, list, 1, "el alta duplicada no debe persistir nada")
}

func TestClientGetByEmail_IgnoraMayusculas(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewClientRepository(store)

	require.NoError(t, repo.Create(&entity.Client{Name: "Bar Pepe", Email: "pepe@bar.es", Estado: entity.ClienteActivo}))

	got, err := repo.GetByEmail("PEPE@BAR.ES")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bar Pepe", got.Name)
}

func TestClientListByEstado(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewClientRepository(store)

	require.NoError(t, repo.Create(&entity.Client{Name: "A", Email: "a@x.es", Estado: entity.ClientePendiente}))
	require.NoError(t, repo.Create(&entity.Client{Name: "B", Email: "b@x.es", Estado: entity.ClienteActivo}))
	require.NoError(t, repo.Create(&entity.Client{Name: "C", Email: "c@x.es", Estado: entity.ClientePendiente}))

	pending, err := repo.ListByEstado(entity.ClientePendiente)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "A", pending[0].Name)
	assert.Equal(t, "C", pending[1].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos: orden de listado y aislamiento de copias
// ──────────────────────────────────────────────────────────────────────────────

// seedActiveClients da de alta n clientes activos (IDs 1..n); los pedidos solo
// se aceptan para clientes activos del mismo snapshot.
func seedActiveClients(t *testing.T, store *filestore.Store, n int) {
	t.Helper()
	repo := filestore.NewClientRepository(store)
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(&entity.Client{
			Name:   "Cliente",
			Email:  string(rune('a'+i)) + "@clientes.es",
			Estado: entity.ClienteActivo,
		}))
	}
}

func TestOrderList_MasRecientesPrimero(t *testing.T) {
	store, _ := openStore(t)
	seedActiveClients(t, store, 1)
	repo := filestore.NewOrderRepository(store)

	base := time.Now()
	for i := 0; i < 3; i++ {
		o := &entity.Order{
			ClientID:  1,
			Estado:    entity.PedidoPendiente,
			Total:     decimal.NewFromInt(int64(10 * (i + 1))),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(o))
	}

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ID, "el pedido más reciente va primero")
	assert.Equal(t, int64(1), list[2].ID)
}

func TestOrderGetByID_DevuelveCopia(t *testing.T) {
	store, _ := openStore(t)
	seedActiveClients(t, store, 1)
	repo := filestore.NewOrderRepository(store)

	o := &entity.Order{
		ClientID:  1,
		Estado:    entity.PedidoPendiente,
		Items:     []entity.OrderItem{{Product: "Tomate Pera", Price: decimal.NewFromFloat(1.20), Quantity: decimal.NewFromInt(2), Unit: "kg"}},
		Total:     decimal.NewFromFloat(2.40),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(o))

	got, err := repo.GetByID(o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Mutar la copia no debe afectar al snapshot
	got.Items[0].Product = "mutado"
	got.Estado = entity.PedidoCancelado

	again, err := repo.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomate Pera", again.Items[0].Product)
	assert.Equal(t, entity.PedidoPendiente, again.Estado)
}

func TestOrderListByClient_FiltraPorCliente(t *testing.T) {
	store, _ := openStore(t)
	seedActiveClients(t, store, 2)
	repo := filestore.NewOrderRepository(store)

	now := time.Now()
	require.NoError(t, repo.Create(&entity.Order{ClientID: 1, Estado: entity.PedidoPendiente, CreatedAt: now}))
	require.NoError(t, repo.Create(&entity.Order{ClientID: 2, Estado: entity.PedidoPendiente, CreatedAt: now.Add(time.Second)}))
	require.NoError(t, repo.Create(&entity.Order{ClientID: 1, Estado: entity.PedidoPendiente, CreatedAt: now.Add(2 * time.Second)}))

	mine, err := repo.ListByClient(1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(3), mine[0].ID)
	assert.Equal(t, int64(1), mine[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos: aprobación del cliente y mutación dentro del ciclo de exclusión
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_ExigeClienteActivo(t *testing.T) {
	store, _ := openStore(t)
	clients := filestore.NewClientRepository(store)
	require.NoError(t, clients.Create(&entity.Client{Name: "P", Email: "p@x.es", Estado: entity.ClientePendiente}))
	require.NoError(t, clients.Create(&entity.Client{Name: "R", Email: "r@x.es", Estado: entity.ClienteRechazado}))
	repo := filestore.NewOrderRepository(store)

	err := repo.Create(&entity.Order{ClientID: 1, Estado: entity.PedidoPendiente, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrClientePendiente)

	err = repo.Create(&entity.Order{ClientID: 2, Estado: entity.PedidoPendiente, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrClienteRechazado)

	err = repo.Create(&entity.Order{ClientID: 99, Estado: entity.PedidoPendiente, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, list, "un alta rechazada no deja pedido persistido")
}

func TestOrderCreate_CopiaDatosDelClienteEnEseInstante(t *testing.T) {
	store, _ := openStore(t)
	clients := filestore.NewClientRepository(store)
	require.NoError(t, clients.Create(&entity.Client{
		Name:    "Frutería Sol",
		Company: "Frutería Sol SL",
		Email:   "sol@fruterias.es",
		Estado:  entity.ClienteActivo,
	}))
	repo := filestore.NewOrderRepository(store)

	o := &entity.Order{ClientID: 1, Estado: entity.PedidoPendiente, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(o))

	assert.Equal(t, "Frutería Sol", o.ClientName)
	assert.Equal(t, "Frutería Sol SL", o.ClientCompany)
	assert.Equal(t, "sol@fruterias.es", o.ClientEmail)
}

func TestOrderMutate_ErrorDeFnNoPersisteNada(t *testing.T) {
	store, _ := openStore(t)
	seedActiveClients(t, store, 1)
	repo := filestore.NewOrderRepository(store)

	o := &entity.Order{ClientID: 1, Estado: entity.PedidoPendiente, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(o))

	_, err := repo.Mutate(o.ID, func(mut *entity.Order) error {
		mut.Estado = entity.PedidoCancelado
		return domain.ErrTransicionInvalida
	})
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	got, err := repo.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoPendiente, got.Estado, "si fn falla el pedido queda intacto")
}

func TestOrderMutate_PedidoInexistente(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewOrderRepository(store)

	got, err := repo.Mutate(999, func(*entity.Order) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientMutate_AplicaYPersiste(t *testing.T) {
	store, _ := openStore(t)
	repo := filestore.NewClientRepository(store)
	require.NoError(t, repo.Create(&entity.Client{Name: "Bar Pepe", Email: "pepe@bar.es", Estado: entity.ClientePendiente}))

	out, err := repo.Mutate(1, func(c *entity.Client) error {
		c.Estado = entity.ClienteActivo
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.ClienteActivo, out.Estado)

	got, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, entity.ClienteActivo, got.Estado)
}
