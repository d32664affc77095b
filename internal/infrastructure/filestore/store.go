// Package filestore implementa la persistencia por snapshot: un único archivo
// JSON con las tres colecciones y sus contadores de ID. Cada mutación es un
// ciclo leer-modificar-reescribir del snapshot completo, serializado por un
// mutex global del Store, y la escritura es atómica (archivo temporal + rename).
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bielsasys/pedidos-api/internal/domain/entity"
)

// snapshot es el estado completo persistido. Los contadores se guardan junto a
// los datos: nunca se derivan de max(id)+1, así los IDs no se reutilizan tras
// un borrado.
type snapshot struct {
	Products      []*entity.Product `json:"products"`
	Clients       []*entity.Client  `json:"clients"`
	Orders        []*entity.Order   `json:"orders"`
	NextProductID int64             `json:"nextProductId"`
	NextClientID  int64             `json:"nextClientId"`
	NextOrderID   int64             `json:"nextOrderId"`
}

// Store guarda el snapshot en memoria y lo sincroniza con disco.
type Store struct {
	path string

	mu   sync.Mutex
	data *snapshot
}

// Open carga el snapshot desde path. Si el archivo no existe lo crea con el
// catálogo inicial de la tienda.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.data = seedSnapshot()
		if err := s.persist(); err != nil {
			return nil, fmt.Errorf("filestore: crear snapshot inicial: %w", err)
		}
		return s, nil
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// view ejecuta fn con el snapshot bajo el mutex, solo lectura.
func (s *Store) view(fn func(d *snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// mutate ejecuta fn bajo el mutex y reescribe el snapshot completo. Si la
// escritura falla se recarga el estado anterior desde disco, de modo que un
// fallo de persistencia nunca deja el snapshot a medias.
func (s *Store) mutate(fn func(d *snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.data); err != nil {
		return err
	}
	if err := s.persist(); err != nil {
		if rerr := s.reload(); rerr != nil {
			return fmt.Errorf("filestore: persistir: %w (y recargar: %v)", err, rerr)
		}
		return fmt.Errorf("filestore: persistir: %w", err)
	}
	return nil
}

// persist reescribe el archivo completo de forma atómica. Llamar con mu tomado.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// reload lee el archivo y sustituye el estado en memoria. Llamar con mu tomado
// (o antes de publicar el Store).
func (s *Store) reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("filestore: leer snapshot: %w", err)
	}
	var data snapshot
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("filestore: snapshot corrupto: %w", err)
	}
	s.data = &data
	return nil
}

// seedSnapshot devuelve el catálogo con el que arranca la tienda.
func seedSnapshot() *snapshot {
	now := time.Now()
	price := func(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
	products := []*entity.Product{
		{ID: 1, Name: "Naranja Valencia Extra", Category: "citrico", Emoji: "🍊", Price: price(0.38), Unit: "kg", Origin: "Valencia", Badge: "Temporada", MinOrder: "50 kg", Stock: true},
		{ID: 2, Name: "Limón Fino Murcia", Category: "citrico", Emoji: "🍋", Price: price(0.65), Unit: "kg", Origin: "Murcia", MinOrder: "25 kg", Stock: true},
		{ID: 3, Name: "Tomate Pera", Category: "verdura", Emoji: "🍅", Price: price(1.20), Unit: "kg", Origin: "Almería", Badge: "Eco", BadgeType: "eco", MinOrder: "20 kg", Stock: true},
		{ID: 4, Name: "Lechuga Romana", Category: "verdura", Emoji: "🥬", Price: price(0.55), Unit: "ud", Origin: "Murcia", Badge: "Eco", BadgeType: "eco", MinOrder: "20 ud", Stock: true},
		{ID: 5, Name: "Fresas Huelva", Category: "fruta", Emoji: "🍓", Price: price(2.20), Unit: "kg", Origin: "Huelva", Badge: "Temporada", MinOrder: "10 kg", Stock: true},
		{ID: 6, Name: "Melón Piel de Sapo", Category: "fruta", Emoji: "🍈", Price: price(0.60), Unit: "kg", Origin: "C.La Mancha", MinOrder: "30 kg", Stock: true},
	}
	for _, p := range products {
		p.CreatedAt = now
		p.UpdatedAt = now
	}
	return &snapshot{
		Products:      products,
		NextProductID: 7,
		NextClientID:  1,
		NextOrderID:   1,
	}
}
