// Package analytics contiene el caso de uso del panel de administración:
// agregados de pedidos e ingresos para el dashboard.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

const (
	dashboardTopProducts = 5 // productos en el widget del dashboard
	dashboardTrailDays   = 7 // días de la serie de actividad
)

// DashboardUseCase calcula el resumen del negocio a partir de los pedidos.
//
// Todos los agregados se derivan de una sola lectura del repositorio, así los
// contadores y los ingresos salen del mismo snapshot y cuadran entre sí.
// Los pedidos cancelados cuentan en el total de pedidos y en el desglose por
// estado, pero no suman ingresos ni aparecen en el top de productos.
type DashboardUseCase struct {
	orderRepo repository.OrderRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(orderRepo repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{orderRepo: orderRepo}
}

// GetSummary construye el DashboardSummaryDTO a fecha de now.
func (uc *DashboardUseCase) GetSummary(now time.Time) (*dto.DashboardSummaryDTO, error) {
	orders, err := uc.orderRepo.List()
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar pedidos: %w", err)
	}

	summary := &dto.DashboardSummaryDTO{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
		MonthRevenue: decimal.Zero,
		ByStatus:     map[string]int{},
		DateLabel:    monthLabel(now),
	}

	// Serie de los últimos 7 días naturales, el más antiguo primero.
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	buckets := make(map[string]*dto.DailyActivityDTO, dashboardTrailDays)
	for i := dashboardTrailDays - 1; i >= 0; i-- {
		day := dayStart.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		entry := &dto.DailyActivityDTO{Date: key, Revenue: decimal.Zero}
		buckets[key] = entry
		summary.LastWeek = append(summary.LastWeek, *entry)
	}

	type productAcc struct {
		name     string
		quantity decimal.Decimal
	}
	var topOrder []string // orden de primer encuentro, para desempate estable
	totals := map[string]*productAcc{}

	for _, o := range orders {
		summary.ByStatus[o.Estado]++
		if o.Estado == entity.PedidoPendiente {
			summary.PendingOrders++
		}

		cancelled := o.Estado == entity.PedidoCancelado
		if !cancelled {
			summary.TotalRevenue = summary.TotalRevenue.Add(o.Total)
			for _, it := range o.Items {
				acc, ok := totals[it.Product]
				if !ok {
					acc = &productAcc{name: it.Product, quantity: decimal.Zero}
					totals[it.Product] = acc
					topOrder = append(topOrder, it.Product)
				}
				acc.quantity = acc.quantity.Add(it.Quantity)
			}
		}

		if o.CreatedAt.Year() == now.Year() && o.CreatedAt.Month() == now.Month() {
			summary.MonthOrders++
			if !cancelled {
				summary.MonthRevenue = summary.MonthRevenue.Add(o.Total)
			}
		}

		key := o.CreatedAt.Format("2006-01-02")
		if b, ok := buckets[key]; ok {
			b.Orders++
			if !cancelled {
				b.Revenue = b.Revenue.Add(o.Total)
			}
		}
	}

	// Los buckets se mutaron vía mapa; volcar los valores finales a la serie.
	for i := range summary.LastWeek {
		summary.LastWeek[i] = *buckets[summary.LastWeek[i].Date]
		summary.LastWeek[i].Revenue = summary.LastWeek[i].Revenue.Round(2)
	}

	top := make([]dto.TopProductDTO, 0, len(topOrder))
	for _, name := range topOrder {
		top = append(top, dto.TopProductDTO{Product: name, Quantity: totals[name].quantity})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Quantity.GreaterThan(top[j].Quantity)
	})
	if len(top) > dashboardTopProducts {
		top = top[:dashboardTopProducts]
	}
	summary.TopProducts = top

	summary.TotalRevenue = summary.TotalRevenue.Round(2)
	summary.MonthRevenue = summary.MonthRevenue.Round(2)
	return summary, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
