package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCategories(t *testing.T) {
	expense := DefaultExpenseCategories()
	assert.Len(t, expense, 10)
	for i, c := range expense {
		assert.Equal(t, TypeExpense, c.Type)
		assert.Equal(t, i+1, c.SortOrder)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Icon)
	}
	// The first expense category backs the assembler's fallback id
	assert.Equal(t, "餐饮", expense[0].Name)

	income := DefaultIncomeCategories()
	assert.Len(t, income, 6)
	for _, c := range income {
		assert.Equal(t, TypeIncome, c.Type)
	}
}

func TestDefaultAccounts(t *testing.T) {
	accounts := DefaultAccounts()
	assert.Len(t, accounts, 4)
	assert.Equal(t, "现金", accounts[0].Name)

	names := make(map[string]bool)
	for _, a := range accounts {
		names[a.Name] = true
		assert.True(t, a.Balance.IsZero())
	}
	assert.True(t, names["微信"])
	assert.True(t, names["支付宝"])
}
