package domain

import (
	"time"

	"gorm.io/gorm"
)

// LowStockThreshold is the stock level below which a product is flagged
// for restocking.
const LowStockThreshold = 5

// DefaultCategories is the shipped category set. The list is not closed:
// products created with other category values are accepted as-is.
var DefaultCategories = []string{"Saree", "Kurti", "Lehenga", "Dupatta", "Salwar", "Other"}

// Product is a catalog item. Stock is decremented by checkout and
// LowStockAlert is recomputed on every write.
type Product struct {
	ID            int64     `json:"id,string" form:"id"`
	Name          string    `gorm:"index" json:"name" form:"name"`
	Category      string    `gorm:"index;size:64" json:"category" form:"category"`
	Size          string    `gorm:"size:32" json:"size" form:"size"`
	Color         string    `gorm:"size:64" json:"color" form:"color"`
	CostPrice     float64   `json:"cost_price" form:"cost_price"`
	SellingPrice  float64   `json:"selling_price" form:"selling_price"`
	Stock         int       `json:"stock" form:"stock"`
	ImageUrl      string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	LowStockAlert bool      `gorm:"index" json:"low_stock_alert"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "pos_product"
}

// BeforeSave keeps the derived low stock flag in sync with stock.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.LowStockAlert = p.Stock < LowStockThreshold
	return nil
}
