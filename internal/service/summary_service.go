package service

import (
	"context"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/repository"
)

// SummaryService builds the end-of-day overview: every sale and every
// payment process of one calendar day, oldest first.
type SummaryService interface {
	Daily(ctx context.Context, date string) (*dto.DailySummaryResponse, error)
}

type summaryService struct {
	saleRepo    repository.SaleRepository
	paymentRepo repository.PaymentRepository
}

func NewSummaryService(saleRepo repository.SaleRepository, paymentRepo repository.PaymentRepository) SummaryService {
	return &summaryService{saleRepo: saleRepo, paymentRepo: paymentRepo}
}

func (s *summaryService) Daily(ctx context.Context, date string) (*dto.DailySummaryResponse, error) {
	sales, err := s.saleRepo.ListByDay(ctx, date)
	if err != nil {
		return nil, err
	}
	processes, err := s.paymentRepo.ListProcessesByDay(ctx, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.DailySummaryResponse{
		Sales:    make([]dto.SaleResponse, 0, len(sales)),
		Payments: make([]dto.PaymentProcessResponse, 0, len(processes)),
	}
	for i := range sales {
		resp.Sales = append(resp.Sales, *saleToResponse(&sales[i]))
	}
	for i := range processes {
		resp.Payments = append(resp.Payments, *processToResponse(&processes[i]))
	}
	return resp, nil
}
