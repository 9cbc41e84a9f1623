// Package output renders processed statements as JSON, CSV or xlsx.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-parser/internal/extract"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatXLSX:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, csv or xlsx)", s)
	}
}

// Document is the rendered payload shared by every encoding.
type Document struct {
	Transactions   []extract.Record `json:"transactions"`
	ClosingBalance *decimal.Decimal `json:"closing_balance,omitempty"`
}

// Write encodes the document onto w in the requested format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatCSV:
		return writeCSV(w, doc)
	case FormatXLSX:
		return writeXLSX(w, doc)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if doc.Transactions == nil {
		doc.Transactions = []extract.Record{}
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// writeCSV emits transactions only; the closing balance has no row shape.
func writeCSV(w io.Writer, doc Document) error {
	if err := gocsv.Marshal(doc.Transactions, w); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

var xlsxHeader = []interface{}{"Date", "Description", "Amount", "Balance", "Debit/Credit", "Category"}

func writeXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rowNum := 2
	for _, tx := range doc.Transactions {
		balance := ""
		if tx.Balance != nil {
			balance = tx.Balance.String()
		}
		row := []interface{}{tx.Date, tx.Description, tx.Amount.String(), balance, tx.DebitCredit, tx.Category}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		rowNum++
	}

	if doc.ClosingBalance != nil {
		cell, err := excelize.CoordinatesToCellName(1, rowNum+1)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		row := []interface{}{"Closing Balance", "", doc.ClosingBalance.String()}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write closing balance: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
