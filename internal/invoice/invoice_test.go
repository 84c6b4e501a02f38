package invoice

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustagiz/Aleen/internal/domain"
)

func testShop() ShopInfo {
	return ShopInfo{
		Name:      "Aleen Clothing",
		Owner:     "Aleen",
		Phone:     "+91 98765 43210",
		Email:     "contact@aleen.in",
		Address:   "12 MG Road",
		City:      "Jaipur",
		State:     "Rajasthan",
		Pincode:   "302001",
		GstNumber: "08AAAAA0000A1Z5",
		UpiID:     "aleenclothing@paytm",
		Tagline:   "Empowering Indian Women",
	}
}

func testSale() *domain.Sale {
	return &domain.Sale{
		ID:            1,
		InvoiceNumber: "INV1756600000001",
		CustomerName:  "Priya Sharma",
		CustomerPhone: "+91 91234 56789",
		Items: []domain.SaleItem{
			{Name: "Banarasi Saree", Quantity: 2, Price: 1500, CostPrice: 1000},
			{Name: "Silk Dupatta", Quantity: 1, Price: 450, CostPrice: 300},
		},
		Subtotal:  3450,
		GstRate:   5,
		GstAmount: 172.5,
		Discount:  100,
		Total:     3522.5,
		Profit:    1150,
		SaleDate:  time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC),
	}
}

func TestWhatsAppMessage(t *testing.T) {
	msg := WhatsAppMessage(testShop(), testSale())

	assert.True(t, strings.HasPrefix(msg, "*ALEEN CLOTHING*\n"))
	assert.Contains(t, msg, "*Invoice: INV1756600000001*")
	assert.Contains(t, msg, "*Items Purchased:*")
	assert.Contains(t, msg, "Banarasi Saree\nQty: 2 x ₹1500.00 = ₹3000.00")
	assert.Contains(t, msg, "Silk Dupatta\nQty: 1 x ₹450.00 = ₹450.00")
	assert.Contains(t, msg, "*Subtotal:* ₹3450.00")
	assert.Contains(t, msg, "*GST (5%):* ₹172.50")
	assert.Contains(t, msg, "*Discount:* -₹100.00")
	assert.Contains(t, msg, "*Total:* ₹3522.50")
	assert.Contains(t, msg, "Thank you for your purchase! Visit Again")
	assert.True(t, strings.HasSuffix(msg, "Aleen Clothing | 12 MG Road"))
}

func TestWhatsAppMessageNoDiscountLine(t *testing.T) {
	sale := testSale()
	sale.Discount = 0
	msg := WhatsAppMessage(testShop(), sale)
	assert.NotContains(t, msg, "*Discount:*")
}

func TestWhatsAppShare(t *testing.T) {
	payload := WhatsAppShare(testShop(), testSale())

	assert.Equal(t, "919123456789", payload.Phone)
	assert.True(t, strings.HasPrefix(payload.URL, "https://wa.me/919123456789?text="))
	// the URL must not carry raw spaces or newlines
	assert.NotContains(t, payload.URL, " ")
	assert.NotContains(t, payload.URL, "\n")
	assert.Contains(t, payload.Text, "INV1756600000001")
}

func TestUPIString(t *testing.T) {
	got := UPIString(testShop(), 3522.5, "INV1756600000001")
	assert.Equal(t,
		"upi://pay?pa=aleenclothing@paytm&pn=Aleen+Clothing&am=3522.50&cu=INR&tn=Invoice INV1756600000001",
		got)
}

func TestUPIQRCode(t *testing.T) {
	png, err := UPIQRCode(testShop(), 472.5, "INV42")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF(testShop(), testSale())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
