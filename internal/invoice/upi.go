package invoice

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// UPIString builds the upi://pay URI encoding the payee, amount and
// invoice reference, scannable by any UPI app.
func UPIString(shop ShopInfo, amount float64, invoiceNumber string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR&tn=Invoice %s",
		shop.UpiID, url.QueryEscape(shop.Name), amount, invoiceNumber)
}

// UPIQRCode renders the payment URI as a PNG.
func UPIQRCode(shop ShopInfo, amount float64, invoiceNumber string) ([]byte, error) {
	return qrcode.Encode(UPIString(shop, amount, invoiceNumber), qrcode.Medium, qrSize)
}
