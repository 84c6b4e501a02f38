package pos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustagiz/Aleen/internal/domain"
)

func checkoutOne(t *testing.T, svc *Service, p *domain.Product, qty int, day time.Time) *domain.Sale {
	t.Helper()
	sale, err := svc.Checkout(context.Background(), CheckoutInput{
		CustomerName:  "Walk-in",
		CustomerPhone: "9999999999",
		Items:         []CartLine{{ProductID: p.ID, Quantity: qty}},
		Subtotal:      p.SellingPrice * float64(qty),
		SaleDate:      day,
	})
	require.NoError(t, err)
	return sale
}

func TestDashboardTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	saree := seedProduct(t, db, "Banarasi Saree", "Saree", 100, 150, 50)
	kurti := seedProduct(t, db, "Cotton Kurti", "Kurti", 200, 350, 50)

	day := time.Date(2026, 8, 15, 11, 0, 0, 0, time.UTC)
	checkoutOne(t, svc, saree, 3, day)
	checkoutOne(t, svc, kurti, 2, day.Add(time.Hour))

	report, err := svc.Dashboard(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 450+700, report.TotalSales, 1e-9)
	assert.InDelta(t, 3*50+2*150, report.TotalProfit, 1e-9)
	assert.Equal(t, 5, report.ItemsSold)
	assert.Equal(t, map[string]int{"Saree": 3, "Kurti": 2}, report.CategoryStats)
	require.Len(t, report.SalesData, 2)
}

func TestDashboardDateRangeScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, "Silk Dupatta", "Dupatta", 100, 200, 50)

	inRange := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	checkoutOne(t, svc, p, 2, inRange)
	checkoutOne(t, svc, p, 4, outOfRange)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	report, err := svc.Dashboard(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.InDelta(t, 400, report.TotalSales, 1e-9)
	assert.Equal(t, 2, report.ItemsSold)
	require.Len(t, report.SalesData, 1)
}

func TestDashboardTopProductsCapAndOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	day := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	// seven products sold with descending quantities 8..2
	for i := 0; i < 7; i++ {
		p := seedProduct(t, db, fmt.Sprintf("Kurti %d", i), "Kurti", 100, 200, 100)
		checkoutOne(t, svc, p, 8-i, day.Add(time.Duration(i)*time.Minute))
	}

	report, err := svc.Dashboard(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 8-i, report.TopProducts[i].Quantity)
	}
}

func TestDashboardTopProductsTieKeepsScanOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	day := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)
	names := []string{"Kanjivaram Saree", "Chanderi Kurti", "Phulkari Dupatta"}
	// equal quantities; later sales first in the date descending scan
	for i, name := range names {
		p := seedProduct(t, db, name, "Saree", 100, 200, 100)
		checkoutOne(t, svc, p, 2, day.Add(time.Duration(-i)*time.Hour))
	}

	report, err := svc.Dashboard(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 3)
	for i, name := range names {
		assert.Equal(t, name, report.TopProducts[i].Name)
		assert.Equal(t, 2, report.TopProducts[i].Quantity)
	}
}

func TestDashboardSkipsDeletedProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	kept := seedProduct(t, db, "Kota Saree", "Saree", 100, 200, 50)
	gone := seedProduct(t, db, "Old Lehenga", "Lehenga", 1000, 2000, 50)

	day := time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC)
	checkoutOne(t, svc, kept, 2, day)
	checkoutOne(t, svc, gone, 3, day.Add(time.Minute))

	require.NoError(t, db.Delete(&domain.Product{}, gone.ID).Error)

	report, err := svc.Dashboard(context.Background(), nil, nil)
	require.NoError(t, err)

	// Totals still include the deleted product's sale; the category and
	// product counters do not.
	assert.InDelta(t, 400+6000, report.TotalSales, 1e-9)
	assert.Equal(t, 5, report.ItemsSold)
	assert.Equal(t, map[string]int{"Saree": 2}, report.CategoryStats)
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, "Kota Saree", report.TopProducts[0].Name)
}

func TestDashboardLowStockItemsCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	for i := 0; i < 12; i++ {
		seedProduct(t, db, fmt.Sprintf("Dupatta %d", i), "Dupatta", 50, 100, 2)
	}
	seedProduct(t, db, "Well Stocked", "Saree", 50, 100, 40)

	report, err := svc.Dashboard(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, report.LowStockItems, 10)
	for _, p := range report.LowStockItems {
		assert.True(t, p.LowStockAlert)
	}
}

func TestLowStockProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedProduct(t, db, "Nearly Out", "Saree", 50, 100, 1)
	seedProduct(t, db, "Running Low", "Kurti", 50, 100, 4)
	seedProduct(t, db, "Plenty", "Kurti", 50, 100, 30)

	rows, err := svc.LowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nearly Out", rows[0].Name)
	assert.Equal(t, "Running Low", rows[1].Name)
}
