package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recibo/internal/extract"
)

func TestExtract_FullReceipt(t *testing.T) {
	raw := "ACME Corp\nFactura N° A-1023\nFecha: 05/03/2024\nTotal a Pagar: 1.250,00"

	fs := extract.Extract(raw)

	assert.Equal(t, "ACME Corp", fs.Provider)
	assert.Equal(t, "A-1023", fs.InvoiceNumber)
	assert.Equal(t, "05/03/2024", fs.IssueDate)
	assert.Equal(t, "1.250,00", fs.TotalAmount)
	assert.Empty(t, fs.TaxAmount)

	assert.Equal(t, 1250.00, extract.ParseAmount(fs.TotalAmount))
}

func TestExtract_EmptyInput(t *testing.T) {
	fs := extract.Extract("")
	assert.Equal(t, extract.FieldSet{}, fs)
}

func TestExtract_GarbledInput(t *testing.T) {
	fs := extract.Extract("~~~###!!!\n\n\t\n%%%")
	assert.Equal(t, "~~~###!!!", fs.Provider)
	assert.Empty(t, fs.InvoiceNumber)
	assert.Empty(t, fs.IssueDate)
	assert.Empty(t, fs.TotalAmount)
}

func TestExtract_FirstDateWins(t *testing.T) {
	raw := "Fecha: 01/02/2023\nVencimiento: 15/02/2023"
	fs := extract.Extract(raw)
	assert.Equal(t, "01/02/2023", fs.IssueDate)
}

func TestExtract_DateFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"day first with slashes", "emitido el 05/03/2024", "05/03/2024"},
		{"day first with dashes", "emitido el 05-03-2024", "05-03-2024"},
		{"year first with slashes", "date 2024/03/05", "2024/03/05"},
		{"year first with dashes", "date 2024-03-05", "2024-03-05"},
		{"no date", "sin fecha aqui", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.Extract(tt.raw).IssueDate)
		})
	}
}

func TestExtract_BogusDateKeptVerbatim(t *testing.T) {
	// No calendar validation: what the document says is what is stored.
	fs := extract.Extract("Fecha: 99/99/9999")
	assert.Equal(t, "99/99/9999", fs.IssueDate)
}

func TestExtract_InvoiceNumberLabels(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"factura with degree sign", "Factura N° A-1023", "A-1023"},
		{"factura alone", "Factura 000123", "000123"},
		{"lowercase label", "factura no. B-77", "B-77"},
		{"no with dot", "No. 12345", "12345"},
		{"nro with colon", "Nro: 778-X", "778-X"},
		{"invoice with hash", "Invoice #INV-99", "INV-99"},
		{"first match wins", "Factura N° A-1 y Factura N° B-2", "A-1"},
		{"no label", "documento sin numero", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.Extract(tt.raw).InvoiceNumber)
		})
	}
}

func TestExtract_TotalAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"comma decimal", "Total a Pagar: 1.250,00", "1.250,00"},
		{"dot decimal", "Total: 1,250.00", "1,250.00"},
		{"plain decimal", "Monto 99,50", "99,50"},
		{"amount label", "Amount due 45.00", "45.00"},
		{"first label wins", "Subtotal: 10,00\nTotal: 20,00", "10,00"},
		{"label without number on line", "Total\n1.250,00", ""},
		{"no label", "1.250,00", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.Extract(tt.raw).TotalAmount)
		})
	}
}

func TestExtract_ProviderFirstNonBlankLine(t *testing.T) {
	fs := extract.Extract("\n\n  Distribuidora El Sol S.A.  \nFactura No. 9")
	assert.Equal(t, "Distribuidora El Sol S.A.", fs.Provider)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"european convention", "1.250,00", 1250.00},
		{"us convention", "1,250.00", 1250.00},
		{"currency symbol", "$1,250.00", 1250.00},
		{"euro symbol", "€ 99,50", 99.50},
		{"plain integer", "500", 500},
		{"grouping only", "1,250", 1250},
		{"decimal only", "99.5", 99.5},
		{"millions", "1.234.567,89", 1234567.89},
		{"garbage", "not a number", 0},
		{"separators only", ".,", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.ParseAmount(tt.text))
		})
	}
}
