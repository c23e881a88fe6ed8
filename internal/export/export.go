// Package export writes stored transactions to CSV for use in spreadsheet
// tools and other trackers.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CSVRow is the flat CSV shape of a stored transaction.
type CSVRow struct {
	ID        int64  `csv:"ID"`
	Date      string `csv:"Date"`
	Type      string `csv:"Type"`
	Amount    string `csv:"Amount"`
	Merchant  string `csv:"Merchant"`
	Note      string `csv:"Note"`
	Source    string `csv:"Source"`
	Confirmed bool   `csv:"Confirmed"`
}

// WriteTransactionsToCSV writes transactions to a CSV file.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing transactions to CSV file")

	if dir := filepath.Dir(csvFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]CSVRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, CSVRow{
			ID:        tx.ID,
			Date:      tx.CreatedAt.Format("2006-01-02 15:04:05"),
			Type:      string(tx.Type),
			Amount:    tx.Amount.StringFixed(2),
			Merchant:  tx.Merchant,
			Note:      tx.Note,
			Source:    string(tx.Source),
			Confirmed: tx.Confirmed,
		})
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Info("Transactions exported")
	return nil
}
