package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"whereismymoney/wimm/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID: 1,
			TransactionDraft: models.TransactionDraft{
				Type:      models.TypeExpense,
				Amount:    decimal.RequireFromString("18.5"),
				Merchant:  "瑞幸咖啡",
				Source:    models.SourceWeChat,
				CreatedAt: time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC),
			},
		},
		{
			ID: 2,
			TransactionDraft: models.TransactionDraft{
				Type:      models.TypeIncome,
				Amount:    decimal.RequireFromString("100"),
				Source:    models.SourceAlipay,
				CreatedAt: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
				Confirmed: true,
			},
		},
	}
}

func TestWriteTransactionsToCSV(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "ID,Date,Type,Amount,Merchant,Note,Source,Confirmed", lines[0])
	assert.Equal(t, "1,2026-03-15 12:30:00,expense,18.50,瑞幸咖啡,,wechat,false", lines[1])
	assert.Equal(t, "2,2026-03-16 09:00:00,income,100.00,,,alipay,true", lines[2])
}

func TestWriteTransactionsToCSV_NilTransactions(t *testing.T) {
	err := WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}

func TestWriteTransactionsToCSV_EmptySlice(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteTransactionsToCSV([]models.Transaction{}, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Equal(t, "ID,Date,Type,Amount,Merchant,Note,Source,Confirmed",
		strings.TrimSpace(string(data)))
}

func TestWriteTransactionsToCSV_CreatesNestedDirectory(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "exports", "2026", "transactions.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), csvFile))

	_, err := os.Stat(csvFile)
	assert.NoError(t, err)
}
