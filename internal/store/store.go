// Package store provides the sqlite-backed repository for transactions,
// categories and accounts. The ingestion pipeline only reads categories and
// accounts and inserts drafts; everything else is the surrounding app's
// business.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"whereismymoney/wimm/internal/models"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"
)

// Store manages the sqlite database connection.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens the database at dbPath, creating directories, schema and seed
// data as needed. WAL mode and foreign keys are enabled.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if err := s.seedDefaults(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding defaults: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			amount TEXT NOT NULL,
			category_id INTEGER NOT NULL,
			account_id INTEGER NOT NULL,
			merchant TEXT DEFAULT '',
			note TEXT DEFAULT '',
			source TEXT DEFAULT 'manual',
			created_at TEXT NOT NULL,
			confirmed INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			icon TEXT NOT NULL,
			type TEXT NOT NULL,
			sort_order INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			icon TEXT NOT NULL,
			balance TEXT DEFAULT '0'
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedDefaults inserts the default categories and accounts into an empty
// database, preserving their seed order so id 1 is the first expense
// category and the first account.
func (s *Store) seedDefaults() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		seed := append(models.DefaultExpenseCategories(), models.DefaultIncomeCategories()...)
		for _, c := range seed {
			if _, err := s.db.Exec(
				`INSERT INTO categories (name, icon, type, sort_order) VALUES (?, ?, ?, ?)`,
				c.Name, c.Icon, string(c.Type), c.SortOrder,
			); err != nil {
				return err
			}
		}
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for _, a := range models.DefaultAccounts() {
			if _, err := s.db.Exec(
				`INSERT INTO accounts (name, icon, balance) VALUES (?, ?, ?)`,
				a.Name, a.Icon, a.Balance.String(),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// Categories returns all categories in seed order.
func (s *Store) Categories() ([]models.Category, error) {
	rows, err := s.db.Query(
		`SELECT id, name, icon, type, sort_order FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var typ string
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &typ, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Type = models.TransactionType(typ)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CategoriesByType returns the categories of one transaction type.
func (s *Store) CategoriesByType(t models.TransactionType) ([]models.Category, error) {
	all, err := s.Categories()
	if err != nil {
		return nil, err
	}
	var filtered []models.Category
	for _, c := range all {
		if c.Type == t {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Accounts returns all accounts in seed order.
func (s *Store) Accounts() ([]models.Account, error) {
	rows, err := s.db.Query(`SELECT id, name, icon, balance FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		var balance string
		if err := rows.Scan(&a.ID, &a.Name, &a.Icon, &balance); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		dec, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid balance for account %d: %w", a.ID, err)
		}
		a.Balance = dec
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// InsertTransaction persists a draft and returns the assigned id.
func (s *Store) InsertTransaction(draft models.TransactionDraft) (int64, error) {
	confirmed := 0
	if draft.Confirmed {
		confirmed = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO transactions
			(type, amount, category_id, account_id, merchant, note, source, created_at, confirmed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(draft.Type), draft.Amount.String(), draft.CategoryID, draft.AccountID,
		draft.Merchant, draft.Note, string(draft.Source),
		draft.CreatedAt.Format(time.RFC3339), confirmed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading assigned id: %w", err)
	}
	return id, nil
}

// Transactions returns all stored transactions, newest first.
func (s *Store) Transactions() ([]models.Transaction, error) {
	rows, err := s.db.Query(
		`SELECT id, type, amount, category_id, account_id, merchant, note, source, created_at, confirmed
		 FROM transactions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var typ, amount, source, createdAt string
		var confirmed int
		if err := rows.Scan(&tx.ID, &typ, &amount, &tx.CategoryID, &tx.AccountID,
			&tx.Merchant, &tx.Note, &source, &createdAt, &confirmed); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		tx.Type = models.TransactionType(typ)
		tx.Source = models.Source(source)
		tx.Confirmed = confirmed != 0

		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount for transaction %d: %w", tx.ID, err)
		}
		tx.Amount = dec

		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at for transaction %d: %w", tx.ID, err)
		}
		tx.CreatedAt = ts

		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
