package invoice

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pkg/errors"

	"github.com/Mustagiz/Aleen/internal/domain"
)

// The built-in PDF fonts have no rupee glyph, so amounts use "Rs.".
func rupees(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

// RenderPDF produces the invoice document for a sale.
func RenderPDF(shop ShopInfo, sale *domain.Sale) ([]byte, error) {
	m := maroto.New()

	m.AddRow(10, text.NewCol(12, shop.Name, props.Text{
		Size: 16, Style: fontstyle.Bold, Align: align.Center,
	}))
	if shop.Tagline != "" {
		m.AddRow(5, text.NewCol(12, shop.Tagline, props.Text{
			Size: 9, Style: fontstyle.Italic, Align: align.Center,
		}))
	}
	address := shop.Address
	if shop.City != "" {
		address = fmt.Sprintf("%s, %s %s", shop.Address, shop.City, shop.Pincode)
	}
	m.AddRow(5, text.NewCol(12, address, props.Text{Size: 8, Align: align.Center}))
	if shop.GstNumber != "" {
		m.AddRow(5, text.NewCol(12, "GSTIN: "+shop.GstNumber, props.Text{Size: 8, Align: align.Center}))
	}

	m.AddRows(line.NewRow(4))

	m.AddRow(6,
		text.NewCol(6, "Invoice: "+sale.InvoiceNumber, props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(6, sale.SaleDate.Format("02/01/2006 15:04"), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(6, "Customer: "+sale.CustomerName, props.Text{Size: 9}),
		text.NewCol(6, "Phone: "+sale.CustomerPhone, props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRows(line.NewRow(4))

	m.AddRow(7,
		text.NewCol(6, "Item", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}),
		text.NewCol(2, "Price", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, item := range sale.Items {
		m.AddRow(6,
			text.NewCol(6, item.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Center}),
			text.NewCol(2, rupees(item.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, rupees(item.Price*float64(item.Quantity)), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRows(line.NewRow(4))

	addTotal := func(label, value string, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(6,
			col.New(6),
			text.NewCol(4, label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}
	addTotal("Subtotal", rupees(sale.Subtotal), false)
	addTotal(fmt.Sprintf("GST (%g%%)", sale.GstRate), rupees(sale.GstAmount), false)
	if sale.Discount > 0 {
		addTotal("Discount", "-"+rupees(sale.Discount), false)
	}
	addTotal("Total", rupees(sale.Total), true)

	if shop.UpiID != "" {
		m.AddRow(8, text.NewCol(12, "Pay via UPI: "+shop.UpiID, props.Text{
			Size: 9, Align: align.Center, Top: 3,
		}))
	}
	m.AddRow(8, text.NewCol(12, "Thank you for your purchase! Visit Again", props.Text{
		Size: 9, Style: fontstyle.Italic, Align: align.Center, Top: 2,
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "generate invoice pdf")
	}
	return doc.GetBytes(), nil
}
