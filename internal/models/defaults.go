package models

import "github.com/shopspring/decimal"

// DefaultExpenseCategories are the categories seeded into a fresh store.
// Order matters: the first category of a type is the assembler's fallback.
func DefaultExpenseCategories() []Category {
	return []Category{
		{Name: "餐饮", Icon: "🍜", Type: TypeExpense, SortOrder: 1},
		{Name: "交通", Icon: "🚗", Type: TypeExpense, SortOrder: 2},
		{Name: "购物", Icon: "🛒", Type: TypeExpense, SortOrder: 3},
		{Name: "娱乐", Icon: "🎮", Type: TypeExpense, SortOrder: 4},
		{Name: "居住", Icon: "🏠", Type: TypeExpense, SortOrder: 5},
		{Name: "通讯", Icon: "📱", Type: TypeExpense, SortOrder: 6},
		{Name: "医疗", Icon: "💊", Type: TypeExpense, SortOrder: 7},
		{Name: "教育", Icon: "📚", Type: TypeExpense, SortOrder: 8},
		{Name: "人情", Icon: "🎁", Type: TypeExpense, SortOrder: 9},
		{Name: "其他", Icon: "📦", Type: TypeExpense, SortOrder: 10},
	}
}

// DefaultIncomeCategories are the income categories seeded into a fresh store.
func DefaultIncomeCategories() []Category {
	return []Category{
		{Name: "工资", Icon: "💰", Type: TypeIncome, SortOrder: 1},
		{Name: "奖金", Icon: "🏆", Type: TypeIncome, SortOrder: 2},
		{Name: "投资", Icon: "📈", Type: TypeIncome, SortOrder: 3},
		{Name: "兼职", Icon: "💼", Type: TypeIncome, SortOrder: 4},
		{Name: "红包", Icon: "🧧", Type: TypeIncome, SortOrder: 5},
		{Name: "其他", Icon: "💵", Type: TypeIncome, SortOrder: 6},
	}
}

// DefaultAccounts are the accounts seeded into a fresh store.
func DefaultAccounts() []Account {
	return []Account{
		{Name: "现金", Icon: "💵", Balance: decimal.Zero},
		{Name: "微信", Icon: "💚", Balance: decimal.Zero},
		{Name: "支付宝", Icon: "💙", Balance: decimal.Zero},
		{Name: "银行卡", Icon: "💳", Balance: decimal.Zero},
	}
}
