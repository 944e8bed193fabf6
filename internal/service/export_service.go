package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"recibo/internal/port"
)

const exportSheet = "Receipts"

var exportColumns = []string{
	"ID",
	"Provider",
	"Invoice Number",
	"Issue Date",
	"Total Amount",
	"Status",
	"Created At",
}

// ExportService builds an Excel register of all receipts.
type ExportService interface {
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type exportService struct {
	repo port.ReceiptRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(repo port.ReceiptRepository) ExportService {
	return &exportService{repo: repo}
}

func (s *exportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	receipts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportService.ExportXLSX: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, col); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for row, r := range receipts {
		values := []interface{}{
			r.ID.String(),
			r.Provider,
			r.InvoiceNumber,
			r.IssueDate,
			r.TotalAmount,
			string(r.Status),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", row+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
