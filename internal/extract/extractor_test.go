package extract

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor() *Extractor {
	return NewExtractor(nil, nil, nil, DefaultRenderOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// wantRecord keeps decimal comparisons out of struct equality; decimals are
// compared by value, not representation.
type wantRecord struct {
	date        string
	description string
	amount      string
	balance     string
	debitCredit string
	category    string
}

func assertRecords(t *testing.T, want []wantRecord, got []Record) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		rec := got[i]
		assert.Equal(t, w.date, rec.Date, "row %d date", i)
		assert.Equal(t, w.description, rec.Description, "row %d description", i)
		assert.True(t, rec.Amount.Equal(decimal.RequireFromString(w.amount)),
			"row %d amount: want %s, got %s", i, w.amount, rec.Amount)
		if w.balance == "" {
			assert.Nil(t, rec.Balance, "row %d balance", i)
		} else {
			require.NotNil(t, rec.Balance, "row %d balance", i)
			assert.True(t, rec.Balance.Equal(decimal.RequireFromString(w.balance)),
				"row %d balance: want %s, got %s", i, w.balance, rec.Balance)
		}
		assert.Equal(t, w.debitCredit, rec.DebitCredit, "row %d debit_credit", i)
		assert.Equal(t, w.category, rec.Category, "row %d category", i)
	}
}

func TestExtractTable_DebitCreditPair(t *testing.T) {
	table := RawTable{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"01/01/2024", "Salary", "", "25,000.00", "75,000.00"},
		{"02/01/2024", "ATM Withdrawal", "500.00", "", "74,500.00"},
	}

	res := testExtractor().ExtractTable(table)

	assert.Equal(t, DialectGeneric, res.Dialect)
	assert.Equal(t, 2, res.TotalRows)
	assert.Empty(t, res.Skipped)
	assertRecords(t, []wantRecord{
		{"2024-01-01", "Salary", "25000.00", "75000.00", "credit", "income"},
		{"2024-01-02", "ATM Withdrawal", "-500.00", "74500.00", "debit", ""},
	}, res.Records)
}

func TestExtractTable_SummaryRowsNeverEmitted(t *testing.T) {
	table := RawTable{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"Opening Balance", "", "", "", "75,500.00"},
		{"01/01/2024", "ATM Withdrawal", "500.00", "", "75,000.00"},
		{"Closing Balance", "", "", "", "75,000.00"},
		{"Total", "", "500.00", "", ""},
	}

	res := testExtractor().ExtractTable(table)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "ATM Withdrawal", res.Records[0].Description)
	require.Len(t, res.Skipped, 3)
	for _, skip := range res.Skipped {
		assert.Equal(t, SkipSummaryRow, skip.Reason)
	}
	assert.Equal(t, []int{1, 3, 4}, []int{res.Skipped[0].Row, res.Skipped[1].Row, res.Skipped[2].Row})
}

func TestExtractTable_EmptyDebitAndCreditSkipsRow(t *testing.T) {
	table := RawTable{
		{"Date", "Description", "Debit", "Credit"},
		{"01/01/2024", "Pending entry", "", ""},
		{"02/01/2024", "Coffee", "120.00", ""},
	}

	res := testExtractor().ExtractTable(table)

	require.Len(t, res.Records, 1)
	assert.True(t, res.Records[0].Amount.Equal(decimal.RequireFromString("-120.00")))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, SkipNoAmount, res.Skipped[0].Reason)
	assert.Equal(t, 1, res.Skipped[0].Row)
}

func TestExtractTable_SimpleTypeColumnForcesSign(t *testing.T) {
	table := RawTable{
		{"Date", "Description", "Amount", "Type"},
		{"01/01/2024", "Fuel Pump", "500.00", "DR"},
		{"02/01/2024", "Salary", "25,000.00", "CR"},
		{"03/01/2024", "Adjustment", "-50.00", ""},
	}

	res := testExtractor().ExtractTable(table)

	assert.Equal(t, DialectSimple, res.Dialect)
	assertRecords(t, []wantRecord{
		{"2024-01-01", "Fuel Pump", "-500.00", "", "debit", "transportation"},
		{"2024-01-02", "Salary", "25000.00", "", "credit", "income"},
		// An empty type cell leaves the parsed sign alone.
		{"2024-01-03", "Adjustment", "-50.00", "", "debit", ""},
	}, res.Records)
}

func TestExtractTable_SpecialLayout(t *testing.T) {
	table := RawTable{
		{"S.No", "Date", "Transaction Id", "Remarks", "Debit", "Credit"},
		{"1", "15/03/2024", "TXN123", "UPI Transfer", "1,000.00", ""},
		// Empty remarks fall back to the transaction-id column.
		{"2", "16/03/2024", "NEFT-REF-9921", "", "", "2,500.00"},
	}

	res := testExtractor().ExtractTable(table)

	assert.Equal(t, DialectSpecial, res.Dialect)
	assertRecords(t, []wantRecord{
		{"2024-03-15", "UPI Transfer", "-1000.00", "", "debit", ""},
		{"2024-03-16", "NEFT-REF-9921", "2500.00", "", "credit", ""},
	}, res.Records)
}

func TestExtractTable_ExtendedLayout(t *testing.T) {
	table := RawTable{
		{"Transaction Date", "Value Date", "Particulars", "Cheque No", "Debit", "Credit", "Balance"},
		{"15/03/2024", "15/03/2024", "NEFT Payment", "", "2,500.00", "", "72,500.00"},
		{"16/03/2024", "16/03/2024", "Interest Credit", "", "", "125.50", "72,625.50"},
	}

	res := testExtractor().ExtractTable(table)

	assert.Equal(t, DialectExtended, res.Dialect)
	assertRecords(t, []wantRecord{
		{"2024-03-15", "NEFT Payment", "-2500.00", "72500.00", "debit", ""},
		{"2024-03-16", "Interest Credit", "125.50", "72625.50", "credit", "income"},
	}, res.Records)
}

func TestExtractTable_ShortRowSkipped(t *testing.T) {
	table := RawTable{
		{"Date", "Description", "Amount", "Type"},
		{"01/01/2024"},
	}

	res := testExtractor().ExtractTable(table)

	assert.Empty(t, res.Records)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, SkipShortRow, res.Skipped[0].Reason)
}

func TestExtractTable_RowWithoutDateDropped(t *testing.T) {
	table := RawTable{
		{"Date", "Description", "Amount", "Type"},
		{"not a date", "Coffee", "5.00", "DR"},
	}

	res := testExtractor().ExtractTable(table)

	assert.Empty(t, res.Records)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, SkipInvalid, res.Skipped[0].Reason)
}

func TestExtractTable_TooShortTable(t *testing.T) {
	res := testExtractor().ExtractTable(RawTable{{"Date", "Description", "Amount"}})

	assert.Empty(t, res.Records)
	assert.Zero(t, res.TotalRows)
}
