package infra

// pdf.go — PDF receipt generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style documents with:
//   - Business name header
//   - Sale id and timestamp
//   - Item table (description, quantity, subtotal)
//   - Bold total and per-IVA-class breakdown
//   - Customer name ("Cliente Ocasional" for walk-ins)
//   - Signature line on credit sales
//
// The output file is saved to storagePath/venta_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/doughoff/ksys/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReceiptPDF writes a PDF receipt for a committed sale.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateReceiptPDF(sale *model.Sale, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("venta_%s.pdf", sale.ID.String())
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Mercado dos Hermanos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW, 5, "Venta "+sale.ID.String(), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // description
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	ivaTotals := map[string]decimal.Decimal{
		model.Iva0:  decimal.Zero,
		model.Iva5:  decimal.Zero,
		model.Iva10: decimal.Zero,
	}

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		description := item.Description
		if len(description) > 22 {
			description = description[:21] + "…"
		}
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		ivaTotals[item.Iva] = ivaTotals[item.Iva].Add(subtotal)

		pdf.CellFormat(col1, 5, description, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, subtotal.StringFixed(0), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, sale.Total.StringFixed(0), "", 1, "R", false, 0, "")

	// ── IVA breakdown ─────────────────────────────────────────────────────────
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	for _, iva := range []string{model.Iva10, model.Iva5, model.Iva0} {
		if ivaTotals[iva].IsZero() {
			continue
		}
		pdf.CellFormat(col1+col2, 4, "IVA "+iva+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, ivaTotals[iva].StringFixed(0), "", 1, "R", false, 0, "")
	}

	// ── Customer ──────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	customer := "Cliente Ocasional"
	if sale.Entity != nil {
		customer = sale.Entity.Name
	}
	pdf.CellFormat(contentW, 4, "Cliente: "+customer, "", 1, "L", false, 0, "")

	// ── Signature line on credit sales ────────────────────────────────────────
	if sale.Type == model.SaleCredit {
		pdf.Ln(6)
		pdf.Line(4, pdf.GetY(), 4+contentW*0.6, pdf.GetY())
		pdf.CellFormat(contentW, 4, "Firma", "", 1, "L", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
