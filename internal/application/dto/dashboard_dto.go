package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto más pedido por cantidad acumulada.
type TopProductDTO struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
}

// DailyActivityDTO un día de la serie de actividad de los últimos 7 días.
type DailyActivityDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO agregado del panel de administración.
type DashboardSummaryDTO struct {
	TotalOrders   int                `json:"totalOrders"`
	PendingOrders int                `json:"pendingOrders"`
	TotalRevenue  decimal.Decimal    `json:"totalRevenue"`
	MonthRevenue  decimal.Decimal    `json:"monthRevenue"`
	MonthOrders   int                `json:"monthOrders"`
	ByStatus      map[string]int     `json:"byStatus"`
	LastWeek      []DailyActivityDTO `json:"lastWeek"`
	TopProducts   []TopProductDTO    `json:"topProducts"`
	DateLabel     string             `json:"dateLabel"` // ej. "Agosto 2026"
}
