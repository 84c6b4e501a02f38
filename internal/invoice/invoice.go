// Package invoice renders customer-facing artifacts for a recorded
// sale: the PDF invoice, the WhatsApp share payload and the UPI payment
// QR code. All renderers take an explicit ShopInfo so shop configuration
// is threaded in rather than read from ambient state.
package invoice

// ShopInfo is the shop-facing configuration consumed by invoice
// rendering, loaded from the settings store at request time.
type ShopInfo struct {
	Name      string `json:"shop_name"`
	Owner     string `json:"owner_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	GstNumber string `json:"gst_number"`
	UpiID     string `json:"upi_id"`
	Logo      string `json:"logo"`
	Tagline   string `json:"tagline"`
}
