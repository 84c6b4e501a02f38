package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/pkg/common"
)

// CartLine is a pending sale item: a catalog reference plus the
// requested quantity.
type CartLine struct {
	ProductID int64 `json:"product_id,string"`
	Quantity  int   `json:"quantity"`
}

// CheckoutInput carries everything the transaction recorder needs.
// Subtotal, GST and discount are precomputed by the caller from current
// catalog prices; line prices are NOT taken from the caller.
type CheckoutInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []CartLine
	Subtotal      float64
	GstRate       float64
	GstAmount     float64
	Discount      float64
	SaleDate      time.Time // zero means now
}

// Service is the sale transaction recorder and reporting aggregator.
type Service struct {
	db        *gorm.DB
	now       func() time.Time
	invoiceID func() int64
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:        db,
		now:       time.Now,
		invoiceID: common.UUIDint64,
	}
}

// Checkout validates stock, decrements it and persists one immutable
// sale record. The whole operation runs in a single transaction: a
// failing line rolls back every earlier decrement, and each decrement is
// guarded by the current stock level so concurrent checkouts can never
// drive stock negative.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*domain.Sale, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, errors.Errorf("invalid quantity %d for product %d", line.Quantity, line.ProductID)
		}
	}

	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = s.now()
	}

	var sale *domain.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profit float64
		items := make([]domain.SaleItem, 0, len(in.Items))

		for _, line := range in.Items {
			var product domain.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.Wrapf(ErrProductNotFound, "product %d", line.ProductID)
				}
				return errors.Wrap(err, "query product")
			}

			if product.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}

			// Guarded decrement: both expressions see the pre-update
			// stock, so the low stock flag tracks the new level.
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				Updates(map[string]interface{}{
					"stock":           gorm.Expr("stock - ?", line.Quantity),
					"low_stock_alert": gorm.Expr("stock - ? < ?", line.Quantity, domain.LowStockThreshold),
					"updated_at":      s.now(),
				})
			if res.Error != nil {
				return errors.Wrap(res.Error, "decrement stock")
			}
			if res.RowsAffected == 0 {
				// a concurrent checkout won the race
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}

			profit += (product.SellingPrice - product.CostPrice) * float64(line.Quantity)
			items = append(items, domain.SaleItem{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  line.Quantity,
				Price:     product.SellingPrice,
				CostPrice: product.CostPrice,
			})
		}

		rec := &domain.Sale{
			InvoiceNumber: fmt.Sprintf("INV%d", s.invoiceID()),
			CustomerName:  in.CustomerName,
			CustomerPhone: in.CustomerPhone,
			Items:         items,
			Subtotal:      in.Subtotal,
			GstRate:       in.GstRate,
			GstAmount:     in.GstAmount,
			Discount:      in.Discount,
			Total:         in.Subtotal + in.GstAmount - in.Discount,
			Profit:        profit,
			SaleDate:      saleDate,
		}
		if err := tx.Create(rec).Error; err != nil {
			return errors.Wrap(err, "create sale")
		}
		sale = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("sale recorded",
		zap.String("invoice", sale.InvoiceNumber),
		zap.Float64("total", sale.Total),
		zap.Int("items", len(sale.Items)))
	return sale, nil
}

// ListSales returns sales sorted by date descending, optionally limited
// to the inclusive range [from, to].
func (s *Service) ListSales(ctx context.Context, from, to *time.Time) ([]domain.Sale, error) {
	q := s.db.WithContext(ctx).Model(&domain.Sale{}).Preload("Items")
	if from != nil && to != nil {
		q = q.Where("sale_date >= ? AND sale_date <= ?", *from, *to)
	}
	var sales []domain.Sale
	if err := q.Order("sale_date DESC").Find(&sales).Error; err != nil {
		return nil, errors.Wrap(err, "query sales")
	}
	return sales, nil
}

// GetSale fetches one sale with its line items.
func (s *Service) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	var sale domain.Sale
	err := s.db.WithContext(ctx).Preload("Items").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query sale")
	}
	return &sale, nil
}

// GetSaleByInvoiceNumber fetches one sale by its printed invoice number.
func (s *Service) GetSaleByInvoiceNumber(ctx context.Context, invoiceNumber string) (*domain.Sale, error) {
	var sale domain.Sale
	err := s.db.WithContext(ctx).Preload("Items").
		Where("invoice_number = ?", invoiceNumber).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query sale")
	}
	return &sale, nil
}

// DeleteSale removes a sale and its line items. Stock is deliberately
// NOT restored: voiding inventory effects of a recorded sale is a
// separate business decision, and the shop's workflow treats deletion as
// pure record removal.
func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale domain.Sale
		if err := tx.First(&sale, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSaleNotFound
		} else if err != nil {
			return errors.Wrap(err, "query sale")
		}
		if err := tx.Where("sale_id = ?", id).Delete(&domain.SaleItem{}).Error; err != nil {
			return errors.Wrap(err, "delete sale items")
		}
		if err := tx.Delete(&domain.Sale{}, id).Error; err != nil {
			return errors.Wrap(err, "delete sale")
		}
		return nil
	})
}
