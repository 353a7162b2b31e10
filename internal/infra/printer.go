package infra

// printer.go — ESC/POS receipt printing over raw TCP (port 9100 on most
// thermal printers). The ticket is fixed at 33 columns; every money figure is
// printed with no decimals, Guarani style.

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/doughoff/ksys/internal/model"

	"github.com/shopspring/decimal"
)

const lineSize = 33

// ESC/POS command sequences.
var (
	escInit     = []byte{0x1b, 0x40}       // ESC @  — reset
	escAlignCT  = []byte{0x1b, 0x61, 0x01} // ESC a 1 — center
	escAlignLT  = []byte{0x1b, 0x61, 0x00} // ESC a 0 — left
	escCutPaper = []byte{0x1d, 0x56, 0x00} // GS V 0 — full cut
)

// PrinterClient talks to a networked ESC/POS printer. A nil client (no
// PRINTER_ADDR configured) silently skips printing.
type PrinterClient struct {
	addr        string
	dialTimeout time.Duration
}

func NewPrinterClient(addr string) *PrinterClient {
	if addr == "" {
		return nil
	}
	return &PrinterClient{addr: addr, dialTimeout: 5 * time.Second}
}

// PrintReceipt renders and sends the sale ticket in one TCP write.
func (c *PrinterClient) PrintReceipt(ctx context.Context, sale *model.Sale) error {
	if c == nil {
		return nil
	}

	payload := buildReceipt(sale)

	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	} else {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	}

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("printer: write: %w", err)
	}
	return nil
}

func buildReceipt(sale *model.Sale) []byte {
	var buf bytes.Buffer
	buf.Write(escInit)

	buf.Write(escAlignCT)
	writeLine(&buf, "Mercado dos Hermanos")

	buf.Write(escAlignLT)
	writeLine(&buf, "Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04:05"))
	writeLine(&buf, "Venta: "+sale.ID.String())
	writeLine(&buf, lineSeparator('='))
	writeLine(&buf, "Nombre del Producto")
	writeLine(&buf, formatLine("CantidadxPrecio", "Total"))
	writeLine(&buf, lineSeparator('='))

	for _, item := range sale.Items {
		description := item.Description
		if len(description) > lineSize {
			description = description[:30] + "..."
		}
		writeLine(&buf, description)

		quantity := fmt.Sprintf("%dx%s", item.Quantity, item.Price.StringFixed(0))
		total := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(0)
		writeLine(&buf, formatLine(quantity, total))
	}

	writeLine(&buf, lineSeparator('='))
	writeLine(&buf, formatLine("Total", sale.Total.StringFixed(0)))
	writeLine(&buf, lineSeparator('='))

	if sale.Entity != nil {
		writeLine(&buf, "Cliente: "+sale.Entity.Name)
	} else {
		writeLine(&buf, "Cliente: Cliente Ocasional")
	}

	// Credit sales carry a signature line for the customer.
	if sale.Type == model.SaleCredit {
		buf.WriteString("\n\n")
		writeLine(&buf, "Firma:")
	}

	writeLine(&buf, lineSeparator('='))
	buf.WriteString("\n\n\n\n\n")
	buf.Write(escCutPaper)

	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte('\n')
}

// formatLine right-aligns end against start on one 33-column row. When end
// does not fit the row is padded with spaces and end is dropped.
func formatLine(start, end string) string {
	spaces := lineSize - len(start)
	if spaces < 0 {
		return start
	}
	if len(end) <= spaces {
		return start + strings.Repeat(" ", spaces-len(end)) + end
	}
	return start + strings.Repeat(" ", spaces)
}

func lineSeparator(character byte) string {
	return strings.Repeat(string(character), lineSize)
}
