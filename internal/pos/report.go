package pos

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/Mustagiz/Aleen/internal/domain"
)

const (
	topProductsLimit   = 5
	lowStockItemsLimit = 10
)

// TopProduct is an aggregated quantity counter for one product name.
type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DashboardReport is the reporting aggregator output. Low stock items
// are a live snapshot of the catalog and are not scoped to the date
// range.
type DashboardReport struct {
	TotalSales    float64          `json:"totalSales"`
	TotalProfit   float64          `json:"totalProfit"`
	ItemsSold     int              `json:"itemsSold"`
	CategoryStats map[string]int   `json:"categoryStats"`
	TopProducts   []TopProduct     `json:"topProducts"`
	LowStockItems []domain.Product `json:"lowStockItems"`
	SalesData     []domain.Sale    `json:"salesData"`
}

// Dashboard aggregates sales over the optional inclusive date range.
// Category counts come from a single batch product fetch instead of a
// per-item lookup; line items whose product has since been deleted are
// excluded from the category and product counters, matching what a
// per-item lookup would produce.
func (s *Service) Dashboard(ctx context.Context, from, to *time.Time) (*DashboardReport, error) {
	sales, err := s.ListSales(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		CategoryStats: map[string]int{},
		TopProducts:   []TopProduct{},
		SalesData:     sales,
	}

	productIDs := make([]int64, 0, 16)
	seen := map[int64]struct{}{}
	for _, sale := range sales {
		report.TotalSales += sale.Total
		report.TotalProfit += sale.Profit
		for _, item := range sale.Items {
			report.ItemsSold += item.Quantity
			if _, ok := seen[item.ProductID]; !ok {
				seen[item.ProductID] = struct{}{}
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	products := map[int64]domain.Product{}
	if len(productIDs) > 0 {
		var rows []domain.Product
		if err := s.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&rows).Error; err != nil {
			return nil, errors.Wrap(err, "query sold products")
		}
		for _, p := range rows {
			products[p.ID] = p
		}
	}

	// Counters keep first-seen order so equal quantities stay in the
	// order they appeared in the (date descending) sales scan.
	productCounts := map[string]int{}
	var productOrder []string
	for _, sale := range sales {
		for _, item := range sale.Items {
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}
			report.CategoryStats[product.Category] += item.Quantity
			if _, ok := productCounts[item.Name]; !ok {
				productOrder = append(productOrder, item.Name)
			}
			productCounts[item.Name] += item.Quantity
		}
	}

	sort.SliceStable(productOrder, func(i, j int) bool {
		return productCounts[productOrder[i]] > productCounts[productOrder[j]]
	})
	for i, name := range productOrder {
		if i >= topProductsLimit {
			break
		}
		report.TopProducts = append(report.TopProducts, TopProduct{Name: name, Quantity: productCounts[name]})
	}

	if err := s.db.WithContext(ctx).
		Where("low_stock_alert = ?", true).
		Limit(lowStockItemsLimit).
		Find(&report.LowStockItems).Error; err != nil {
		return nil, errors.Wrap(err, "query low stock items")
	}

	return report, nil
}

// LowStockProducts lists every product currently under the restock
// threshold, used by the scheduled low stock report.
func (s *Service) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []domain.Product
	err := s.db.WithContext(ctx).
		Where("low_stock_alert = ?", true).
		Order("stock ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query low stock products")
	}
	return rows, nil
}
