package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mustagiz/Aleen/internal/invoice"
	"github.com/Mustagiz/Aleen/internal/pos"
	"github.com/Mustagiz/Aleen/internal/webserver"
)

func registerSalesRoutes() {
	webserver.ApiPOST("/sales", createSale)
	webserver.ApiGET("/sales", listSales)
	webserver.ApiGET("/sales/:id", getSale)
	webserver.ApiDELETE("/sales/:id", deleteSale)
	webserver.ApiGET("/sales/:id/invoice.pdf", saleInvoicePDF)
	webserver.ApiGET("/sales/:id/whatsapp", saleWhatsAppShare)
	webserver.ApiGET("/sales/:id/upiqr.png", saleUpiQRCode)
}

type saleItemPayload struct {
	ProductID int64 `json:"product_id,string" form:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" form:"quantity" validate:"required,gt=0"`
}

type salePayload struct {
	CustomerName  string            `json:"customer_name" form:"customer_name" validate:"required"`
	CustomerPhone string            `json:"customer_phone" form:"customer_phone" validate:"required"`
	Items         []saleItemPayload `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64           `json:"subtotal" form:"subtotal" validate:"gte=0"`
	GstRate       float64           `json:"gst_rate" form:"gst_rate" validate:"gte=0"`
	GstAmount     float64           `json:"gst_amount" form:"gst_amount" validate:"gte=0"`
	Discount      float64           `json:"discount" form:"discount" validate:"gte=0"`
}

func createSale(c echo.Context) error {
	var payload salePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse sale parameters", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Customer, phone and at least one cart line are required", nil)
	}

	lines := make([]pos.CartLine, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, pos.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	svc := pos.NewService(GetDB(c))
	sale, err := svc.Checkout(c.Request().Context(), pos.CheckoutInput{
		CustomerName:  payload.CustomerName,
		CustomerPhone: payload.CustomerPhone,
		Items:         lines,
		Subtotal:      payload.Subtotal,
		GstRate:       payload.GstRate,
		GstAmount:     payload.GstAmount,
		Discount:      payload.Discount,
	})
	if err != nil {
		return failServiceError(c, err)
	}
	return created(c, sale)
}

func listSales(c echo.Context) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse startDate/endDate", err.Error())
	}
	svc := pos.NewService(GetDB(c))
	sales, err := svc.ListSales(c.Request().Context(), from, to)
	if err != nil {
		return failServiceError(c, err)
	}
	return ok(c, sales)
}

func getSale(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}
	svc := pos.NewService(GetDB(c))
	sale, err := svc.GetSale(c.Request().Context(), id)
	if err != nil {
		return failServiceError(c, err)
	}
	return ok(c, sale)
}

func deleteSale(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}
	svc := pos.NewService(GetDB(c))
	if err := svc.DeleteSale(c.Request().Context(), id); err != nil {
		return failServiceError(c, err)
	}
	return ok(c, echo.Map{"message": "Sale deleted successfully"})
}

func saleInvoicePDF(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}
	svc := pos.NewService(GetDB(c))
	sale, err := svc.GetSale(c.Request().Context(), id)
	if err != nil {
		return failServiceError(c, err)
	}

	shop := shopInfo(c)
	pdf, err := invoice.RenderPDF(shop, sale)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "RENDER_ERROR", "Failed to render invoice", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="Invoice_%s.pdf"`, sale.InvoiceNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func saleWhatsAppShare(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}
	svc := pos.NewService(GetDB(c))
	sale, err := svc.GetSale(c.Request().Context(), id)
	if err != nil {
		return failServiceError(c, err)
	}
	return ok(c, invoice.WhatsAppShare(shopInfo(c), sale))
}

func saleUpiQRCode(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}
	svc := pos.NewService(GetDB(c))
	sale, err := svc.GetSale(c.Request().Context(), id)
	if err != nil {
		return failServiceError(c, err)
	}

	png, err := invoice.UPIQRCode(shopInfo(c), sale.Total, sale.InvoiceNumber)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "RENDER_ERROR", "Failed to render QR code", err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
