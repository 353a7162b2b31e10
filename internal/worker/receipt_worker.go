package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: prints the ESC/POS ticket,
// generates the PDF copy, and enqueues an email when the customer has one.
// Everything here is best-effort — a sale is already committed by the time
// its receipt job runs, so failures are logged and never propagated.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doughoff/ksys/internal/infra"
	"github.com/doughoff/ksys/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID string `json:"sale_id"`
}

// ReceiptWorker processes receipt jobs from QueueReceipt.
// The printer call goes through the circuit breaker: while the breaker is
// open, tickets are skipped immediately instead of waiting out TCP timeouts.
type ReceiptWorker struct {
	saleRepo       repository.SaleRepository
	printer        *infra.PrinterClient
	cb             *infra.CircuitBreaker
	dispatcher     *Dispatcher
	pdfStoragePath string
}

// NewReceiptWorker wires all dependencies for the receipt worker.
func NewReceiptWorker(
	saleRepo repository.SaleRepository,
	printer *infra.PrinterClient,
	cb *infra.CircuitBreaker,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		saleRepo:       saleRepo,
		printer:        printer,
		cb:             cb,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the sale (with items and entity) from DB
//  3. Print the ESC/POS ticket through the circuit breaker (max 3 attempts)
//  4. Generate the PDF receipt
//  5. Optionally enqueue an email job when the customer has an email
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale_id")
		return
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		return
	}

	// 1. Thermal ticket, through the circuit breaker
	if w.printer != nil {
		printErr := withRetry(ctx, 3, func(attempt int) error {
			return w.cb.Execute(func() error {
				return w.printer.PrintReceipt(ctx, sale)
			})
		})
		if printErr != nil {
			log.Warn().Err(printErr).Str("sale_id", payload.SaleID).Msg("receipt_worker: ticket print failed")
		} else {
			log.Info().Str("sale_id", payload.SaleID).Msg("receipt_worker: ticket printed")
		}
	}

	// 2. PDF copy
	pdfPath, pdfErr := infra.GenerateReceiptPDF(sale, w.pdfStoragePath)
	if pdfErr != nil {
		log.Warn().Err(pdfErr).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generated")

	// 3. Async email when the customer has one on file
	if sale.Entity != nil && sale.Entity.Email != nil && *sale.Entity.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *sale.Entity.Email,
			Subject: "Comprobante de Venta — Mercado dos Hermanos",
			Body:    fmt.Sprintf("Adjunto encontrara su comprobante de compra.\nTotal: %s", sale.Total.StringFixed(0)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *sale.Entity.Email).Msg("receipt_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *sale.Entity.Email).Msg("receipt_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
