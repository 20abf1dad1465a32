package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/invoice-marketplace/internal/domain"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping repository integration tests")
		os.Exit(0)
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}
	testDB = db

	if err := executeInitSQL(testDB); err != nil {
		panic(fmt.Sprintf("Failed to initialize database schema: %v", err))
	}

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func executeInitSQL(db *sqlx.DB) error {
	sqlBytes, err := os.ReadFile("../../scripts/init.sql")
	if err != nil {
		return fmt.Errorf("failed to read init.sql: %w", err)
	}

	if _, err = db.Exec(string(sqlBytes)); err != nil {
		return fmt.Errorf("failed to execute init.sql: %w", err)
	}

	return nil
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cleanupTestData(t, testDB)
	return testDB
}

func cleanupTestData(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE favorites, deals, funding_offers, invoices, kyc_records, users CASCADE")
	require.NoError(t, err)
}

func seedUser(t *testing.T, db *sqlx.DB, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`
		INSERT INTO users (id, full_name, company_name, email, phone, city)
		VALUES ($1, $2, $3, $4, '+91-9000000000', 'Pune')
	`, id, name, name+" Pvt Ltd", id.String()+"@example.com")
	require.NoError(t, err)
	return id
}

func newInvoice(borrowerID uuid.UUID, status string) *domain.Invoice {
	now := time.Now().UTC()
	return &domain.Invoice{
		ID:                   uuid.New(),
		BorrowerID:           borrowerID,
		Type:                 domain.InvoiceTypeTrade,
		InvoiceNumber:        "INV-" + uuid.NewString()[:8],
		BuyerName:            "Acme Retail",
		BuyerGSTIN:           "27AAAPA1234A1Z5",
		InvoiceDate:          now.AddDate(0, 0, -10).Truncate(24 * time.Hour),
		DueDate:              now.AddDate(0, 0, 80).Truncate(24 * time.Hour),
		InvoiceAmount:        decimal.NewFromInt(12000),
		RequestedAmount:      decimal.NewFromInt(10000),
		MinAcceptAmount:      decimal.NewFromInt(8000),
		ExpectedInterestRate: decimal.NewFromFloat(12.5),
		Currency:             "INR",
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func newOffer(invoiceID, lenderID uuid.UUID, amount int64, validUntil time.Time) *domain.FundingOffer {
	now := time.Now().UTC()
	return &domain.FundingOffer{
		ID:             uuid.New(),
		InvoiceID:      invoiceID,
		LenderID:       lenderID,
		OfferAmount:    decimal.NewFromInt(amount),
		InterestRatePA: decimal.NewFromFloat(13.0),
		ProcessingFee:  decimal.NewFromInt(100),
		TenorDays:      80,
		ValidUntil:     validUntil,
		Status:         domain.OfferStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func offerStatus(t *testing.T, db *sqlx.DB, id uuid.UUID) string {
	t.Helper()
	var status string
	require.NoError(t, db.Get(&status, "SELECT status FROM funding_offers WHERE id = $1", id))
	return status
}

func invoiceStatus(t *testing.T, db *sqlx.DB, id uuid.UUID) string {
	t.Helper()
	var status string
	require.NoError(t, db.Get(&status, "SELECT status FROM invoices WHERE id = $1", id))
	return status
}

func testContext() context.Context {
	return context.Background()
}
