package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// GroupLines colapsa líneas físicas en órdenes lógicas por llave
// userId+timestamp, fecha descendente. A diferencia de Aggregate no filtra por
// estado: la vista de historial muestra también órdenes Pending.
func GroupLines(lines []entity.OrderLine) []LogicalOrder {
	groups := make(map[string]*LogicalOrder)
	order := make([]string, 0, len(lines))

	for _, line := range lines {
		if line.CreatedAt.IsZero() {
			continue
		}
		key := line.GroupKey()
		group, ok := groups[key]
		if !ok {
			group = &LogicalOrder{
				OrderID:  key,
				UserID:   line.UserID,
				UserName: line.UserName,
				Date:     line.CreatedAt.UTC(),
				Status:   line.Status,
				Total:    decimal.Zero,
			}
			groups[key] = group
			order = append(order, key)
		}
		group.Items = append(group.Items, OrderItem{
			LineID:       line.ID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			Price:        line.UnitPrice,
			Quantity:     line.Quantity,
			Status:       line.Status,
		})
		group.Total = group.Total.Add(line.Total())
	}

	out := make([]LogicalOrder, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].OrderID < out[j].OrderID
	})
	return out
}
