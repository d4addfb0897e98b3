package orders

import (
	"bytes"
	"fmt"
	"net/http"

	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// invoiceRow is one rendered line of the invoice item table, amounts already
// formatted for print.
type invoiceRow struct {
	Name     string
	Quantity string
	Unit     string
	Amount   string
}

// invoiceRows formats the order's line items plus the closing total row.
func invoiceRows(order models.Order) ([]invoiceRow, string) {
	rows := make([]invoiceRow, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, invoiceRow{
			Name:     item.Name,
			Quantity: fmt.Sprintf("%d", item.Quantity),
			Unit:     fmt.Sprintf("%.2f", item.Price),
			Amount:   fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)),
		})
	}
	return rows, fmt.Sprintf("%.2f", order.Total)
}

// Invoice renders the order as a downloadable PDF with a QR code of the
// order id for reference at handover.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, code, msg := fetchOwnedOrder(r, ps.ByName("orderid"))
	if code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}

	qrPNG, err := qrcode.Encode(order.OrderID, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Deliver to: %s", order.Address))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Item", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	rows, total := invoiceRows(order)

	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(90, 8, row.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 8, row.Quantity, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, row.Unit, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, row.Amount, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, total, "1", 1, "R", false, 0, "")

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 20, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
