package store

import (
	"whereismymoney/wimm/internal/models"
)

// MockStore is an in-memory implementation of the read surface the draft
// assembler needs, for tests that should not touch sqlite.
type MockStore struct {
	CategoryRows []models.Category
	AccountRows  []models.Account
	Inserted     []models.TransactionDraft

	// Error flags for testing error conditions
	CategoriesError error
	AccountsError   error
	InsertError     error

	nextID int64
}

// Categories returns the mock categories.
func (m *MockStore) Categories() ([]models.Category, error) {
	if m.CategoriesError != nil {
		return nil, m.CategoriesError
	}
	return m.CategoryRows, nil
}

// Accounts returns the mock accounts.
func (m *MockStore) Accounts() ([]models.Account, error) {
	if m.AccountsError != nil {
		return nil, m.AccountsError
	}
	return m.AccountRows, nil
}

// InsertTransaction records the draft and assigns a sequential id.
func (m *MockStore) InsertTransaction(draft models.TransactionDraft) (int64, error) {
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.Inserted = append(m.Inserted, draft)
	m.nextID++
	return m.nextID, nil
}
