package invoice

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/pkg/common"
)

// SharePayload is everything a client needs to push an invoice to the
// customer over WhatsApp.
type SharePayload struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// WhatsAppMessage formats the invoice summary sent alongside the PDF.
// WhatsApp renders *text* as bold.
func WhatsAppMessage(shop ShopInfo, sale *domain.Sale) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", strings.ToUpper(shop.Name))
	fmt.Fprintf(&b, "*Invoice: %s*\n\n", sale.InvoiceNumber)
	b.WriteString("*Items Purchased:*\n")
	for i, item := range sale.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\nQty: %d x ₹%.2f = ₹%.2f\n",
			item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\n*Subtotal:* ₹%.2f\n", sale.Subtotal)
	fmt.Fprintf(&b, "*GST (%g%%):* ₹%.2f\n", sale.GstRate, sale.GstAmount)
	if sale.Discount > 0 {
		fmt.Fprintf(&b, "*Discount:* -₹%.2f\n", sale.Discount)
	}
	fmt.Fprintf(&b, "*Total:* ₹%.2f\n\n", sale.Total)
	b.WriteString("Thank you for your purchase! Visit Again\n\n")
	fmt.Fprintf(&b, "%s | %s", shop.Name, shop.Address)
	return b.String()
}

// WhatsAppShare builds the wa.me deep link for the customer's phone.
func WhatsAppShare(shop ShopInfo, sale *domain.Sale) SharePayload {
	text := WhatsAppMessage(shop, sale)
	phone := common.DigitsOnly(sale.CustomerPhone)
	return SharePayload{
		Phone: phone,
		Text:  text,
		URL:   fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text)),
	}
}
