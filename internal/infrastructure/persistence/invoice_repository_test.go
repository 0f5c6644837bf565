package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gkt/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInvoiceRepository creates a GormInvoiceRepository with a mocked SQL connection
func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func TestGormInvoiceRepository_FindByInvoiceNumber(t *testing.T) {
	t.Run("finds invoice by number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "version", "invoice_number", "client_name", "invoice_amount",
			"gst_percent", "tax_amount", "total_amount", "status",
		}).AddRow(
			invoiceID, 1, "INV-202608-0003", "Acme Learning Ltd", decimal.NewFromInt(100000),
			decimal.NewFromInt(18), decimal.NewFromInt(18000), decimal.NewFromInt(118000), "Generated",
		)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE invoice_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("INV-202608-0003", 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByInvoiceNumber(context.Background(), "INV-202608-0003")

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.Equal(t, billing.InvoiceStatusGenerated, invoice.Status)
		assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(118000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_CountByClientAndAmount(t *testing.T) {
	t.Run("counts exact client and amount matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		amount := decimal.NewFromInt(100000)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE client_name = \$1 AND invoice_amount = \$2`).
			WithArgs("Acme Learning Ltd", amount).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountByClientAndAmount(context.Background(), "Acme Learning Ltd", amount)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_ExistsBySourceDocumentID(t *testing.T) {
	t.Run("reports existing invoice for a document", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		docID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE source_document_id = \$1`).
			WithArgs(docID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySourceDocumentID(context.Background(), docID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_GenerateInvoiceNumber(t *testing.T) {
	t.Run("numbers within the current month", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		now := time.Now()
		prefix := fmt.Sprintf("INV-%d%02d-", now.Year(), int(now.Month()))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE invoice_number LIKE \$1`).
			WithArgs(prefix + "%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		number, err := repo.GenerateInvoiceNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"0008", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
