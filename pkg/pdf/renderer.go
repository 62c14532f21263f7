package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Row is one line of the exported table.
type Row struct {
	Name     string
	Amount   decimal.Decimal
	DueDate  time.Time
	Category string
	Status   string
}

var columns = []struct {
	title string
	width float64
}{
	{"Nome", 70},
	{"Valor (R$)", 30},
	{"Vencimento", 30},
	{"Categoria", 35},
	{"Status", 25},
}

// Render produces a PDF table of the given rows, in the order received.
func Render(title string, rows []Row) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 6, "Gerado em "+time.Now().Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for _, col := range columns {
		doc.CellFormat(col.width, 8, col.title, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		doc.CellFormat(columns[0].width, 8, r.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(columns[1].width, 8, r.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(columns[2].width, 8, r.DueDate.Format("02/01/2006"), "1", 0, "C", false, 0, "")
		doc.CellFormat(columns[3].width, 8, r.Category, "1", 0, "L", false, 0, "")
		doc.CellFormat(columns[4].width, 8, r.Status, "1", 0, "C", false, 0, "")
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
