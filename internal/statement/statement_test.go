package statement

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-parser/internal/extract"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testParser() *Parser {
	return NewParser(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testDocument() Document {
	return Document{
		Tables: []extract.RawTable{
			{
				{"Date", "Description", "Debit", "Credit", "Balance"},
				{"01/01/2024", "Salary", "", "25,000.00", "75,000.00"},
				{"02/01/2024", "ATM Withdrawal", "500.00", "", "74,500.00"},
				{"Closing Balance", "", "", "", "74,500.00"},
			},
			{
				{"Date", "Description", "Amount", "Type"},
				{"05/01/2024", "Fuel Pump", "750.00", "DR"},
			},
		},
		Texts: []string{"Statement Period 01/01/2024 to 31/01/2024", "Closing Balance: Rs. 73,750.00"},
	}
}

func TestParser_Process(t *testing.T) {
	res := testParser().Process(testDocument())

	require.Len(t, res.Transactions, 3)
	assert.Equal(t, "2024-01-01", res.Transactions[0].Date)
	assert.Equal(t, "2024-01-02", res.Transactions[1].Date)
	assert.Equal(t, "2024-01-05", res.Transactions[2].Date)

	require.NotNil(t, res.ClosingBalance)
	assert.True(t, res.ClosingBalance.Equal(decimal.RequireFromString("73750.00")))

	s := res.Summary
	assert.NotEqual(t, uuid.Nil, s.JobID)
	assert.Equal(t, 2, s.Tables)
	assert.Equal(t, 4, s.TotalRows)
	assert.Equal(t, 3, s.Parsed)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 2, s.Debits)
	assert.Equal(t, 1, s.Credits)
	assert.True(t, s.TotalDebits.Equal(decimal.RequireFromString("1250.00")),
		"total debits: %s", s.TotalDebits)
	assert.True(t, s.TotalCredits.Equal(decimal.RequireFromString("25000.00")),
		"total credits: %s", s.TotalCredits)
	assert.Equal(t, date(2024, time.January, 1), s.EarliestDate)
	assert.Equal(t, date(2024, time.January, 5), s.LatestDate)
}

func TestParser_ProcessDateBoundsUnderCustomLayout(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	render := extract.RenderOptions{
		DateLayout:      "02/01/2006",
		AmountPrecision: 2,
		IncludeCategory: true,
	}
	p := NewParser(extract.NewExtractor(nil, nil, nil, render, logger), nil, logger)

	// "05/01" sorts after "01/02" lexically; the bounds must come from the
	// calendar dates, not the rendered strings.
	doc := Document{
		Tables: []extract.RawTable{
			{
				{"Date", "Description", "Amount", "Type"},
				{"05/01/2024", "Fuel Pump", "750.00", "DR"},
				{"01/02/2024", "Salary", "25,000.00", "CR"},
			},
		},
	}

	res := p.Process(doc)

	require.Len(t, res.Transactions, 2)
	assert.Equal(t, "05/01/2024", res.Transactions[0].Date)
	assert.Equal(t, date(2024, time.January, 5), res.Summary.EarliestDate)
	assert.Equal(t, date(2024, time.February, 1), res.Summary.LatestDate)
}

func TestParser_ProcessIsIdempotent(t *testing.T) {
	p := testParser()
	doc := testDocument()

	first := p.Process(doc)
	second := p.Process(doc)

	assert.Equal(t, first.Transactions, second.Transactions)
	require.NotNil(t, second.ClosingBalance)
	assert.True(t, first.ClosingBalance.Equal(*second.ClosingBalance))
	assert.NotEqual(t, first.Summary.JobID, second.Summary.JobID)
}

func TestParser_ProcessEmptyDocument(t *testing.T) {
	res := testParser().Process(Document{})

	assert.Empty(t, res.Transactions)
	assert.Nil(t, res.ClosingBalance)
	assert.Zero(t, res.Summary.TotalRows)
	assert.Empty(t, res.Summary.EarliestDate)
}
