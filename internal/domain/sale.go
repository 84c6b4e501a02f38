package domain

import (
	"time"
)

// Sale is an immutable sale record. Line items are captured copies of
// the products at checkout time, so later catalog edits never change
// historical invoices. Sales are only ever created and deleted.
type Sale struct {
	ID            int64      `json:"id,string" form:"id"`
	InvoiceNumber string     `gorm:"uniqueIndex;size:64" json:"invoice_number" form:"invoice_number"`
	CustomerName  string     `json:"customer_name" form:"customer_name"`
	CustomerPhone string     `json:"customer_phone" form:"customer_phone"`
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      float64    `json:"subtotal" form:"subtotal"`
	GstRate       float64    `json:"gst_rate" form:"gst_rate"`
	GstAmount     float64    `json:"gst_amount" form:"gst_amount"`
	Discount      float64    `json:"discount" form:"discount"`
	Total         float64    `json:"total" form:"total"`
	Profit        float64    `json:"profit" form:"profit"`
	SaleDate      time.Time  `gorm:"index" json:"sale_date" form:"sale_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Sale) TableName() string {
	return "pos_sale"
}

// SaleItem is one line of a sale. Price and cost price are snapshots of
// the product at the time of sale.
type SaleItem struct {
	ID        int64   `json:"id,string" form:"id"`
	SaleID    int64   `gorm:"index" json:"sale_id,string" form:"sale_id"`
	ProductID int64   `gorm:"index" json:"product_id,string" form:"product_id"`
	Name      string  `json:"name" form:"name"`
	Quantity  int     `json:"quantity" form:"quantity"`
	Price     float64 `json:"price" form:"price"`
	CostPrice float64 `json:"cost_price" form:"cost_price"`
}

// TableName Specify table name
func (SaleItem) TableName() string {
	return "pos_sale_item"
}

// ItemsSold is the total quantity across all line items.
func (s *Sale) ItemsSold() int {
	var n int
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
