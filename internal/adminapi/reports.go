package adminapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/internal/pos"
	"github.com/Mustagiz/Aleen/internal/webserver"
)

func registerReportRoutes() {
	webserver.ApiGET("/reports/dashboard", dashboardReport)
	webserver.ApiGET("/reports/sales/export", exportSalesReport)
}

func dashboardReport(c echo.Context) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse startDate/endDate", err.Error())
	}
	svc := pos.NewService(GetDB(c))
	report, err := svc.Dashboard(c.Request().Context(), from, to)
	if err != nil {
		return failServiceError(c, err)
	}
	return ok(c, report)
}

// salesExportRow is one spreadsheet line of the sales report.
type salesExportRow struct {
	Invoice       string `csv:"Invoice"`
	Date          string `csv:"Date"`
	Time          string `csv:"Time"`
	CustomerName  string `csv:"Customer Name"`
	CustomerPhone string `csv:"Customer Phone"`
	Items         string `csv:"Items"`
	Subtotal      string `csv:"Subtotal"`
	Gst           string `csv:"GST"`
	Discount      string `csv:"Discount"`
	Total         string `csv:"Total"`
	Profit        string `csv:"Profit"`
}

func exportRows(sales []domain.Sale) []*salesExportRow {
	rows := make([]*salesExportRow, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		names := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			names = append(names, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		rows = append(rows, &salesExportRow{
			Invoice:       sale.InvoiceNumber,
			Date:          sale.SaleDate.Format("02/01/2006"),
			Time:          sale.SaleDate.Format("15:04:05"),
			CustomerName:  sale.CustomerName,
			CustomerPhone: sale.CustomerPhone,
			Items:         strings.Join(names, "; "),
			Subtotal:      fmt.Sprintf("%.2f", sale.Subtotal),
			Gst:           fmt.Sprintf("%.2f", sale.GstAmount),
			Discount:      fmt.Sprintf("%.2f", sale.Discount),
			Total:         fmt.Sprintf("%.2f", sale.Total),
			Profit:        fmt.Sprintf("%.2f", sale.Profit),
		})
	}
	return rows
}

func exportSalesReport(c echo.Context) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse startDate/endDate", err.Error())
	}
	svc := pos.NewService(GetDB(c))
	sales, err := svc.ListSales(c.Request().Context(), from, to)
	if err != nil {
		return failServiceError(c, err)
	}
	rows := exportRows(sales)

	filename := "Sales_Report_" + time.Now().Format("2006-01-02")
	switch strings.ToLower(c.QueryParam("format")) {
	case "", "csv":
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s.csv"`, filename))
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().WriteHeader(http.StatusOK)
		if err := gocsv.Marshal(&rows, c.Response()); err != nil {
			return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to write CSV", err.Error())
		}
		return nil
	case "xlsx":
		xlsx := excelize.NewFile()
		sheet := "Sheet1"
		headers := []string{"Invoice", "Date", "Time", "Customer Name", "Customer Phone",
			"Items", "Subtotal", "GST", "Discount", "Total", "Profit"}
		cols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}
		for j, h := range headers {
			xlsx.SetCellValue(sheet, cols[j]+"1", h)
		}
		for i, row := range rows {
			values := []string{row.Invoice, row.Date, row.Time, row.CustomerName, row.CustomerPhone,
				row.Items, row.Subtotal, row.Gst, row.Discount, row.Total, row.Profit}
			for j, v := range values {
				xlsx.SetCellValue(sheet, cols[j]+strconv.Itoa(i+2), v)
			}
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s.xlsx"`, filename))
		c.Response().Header().Set(echo.HeaderContentType,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Response().WriteHeader(http.StatusOK)
		if err := xlsx.Write(c.Response()); err != nil {
			return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to write XLSX", err.Error())
		}
		return nil
	default:
		return fail(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx", nil)
	}
}
