package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

func TestOfferRepository_DuplicateActiveOffer(t *testing.T) {
	db := setupTestDB(t)
	invoices := repository.NewInvoiceRepository(db)
	offers := repository.NewOfferRepository(db, 5*time.Second)
	ctx := testContext()

	invoice := newInvoice(seedUser(t, db, "Borrower"), domain.InvoiceStatusOpen)
	require.NoError(t, invoices.Create(ctx, invoice))
	lender := seedUser(t, db, "Lender")

	first := newOffer(invoice.ID, lender, 9000, time.Now().Add(time.Hour))
	require.NoError(t, offers.Create(ctx, first))

	exists, err := offers.ExistsActive(ctx, invoice.ID, lender)
	require.NoError(t, err)
	assert.True(t, exists)

	err = offers.Create(ctx, newOffer(invoice.ID, lender, 8500, time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, customError.ErrDuplicateOffer)

	// A withdrawn offer frees the slot.
	_, err = offers.Withdraw(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, offers.Create(ctx, newOffer(invoice.ID, lender, 8500, time.Now().Add(time.Hour))))
}

func TestOfferRepository_Withdraw(t *testing.T) {
	db := setupTestDB(t)
	invoices := repository.NewInvoiceRepository(db)
	offers := repository.NewOfferRepository(db, 5*time.Second)
	ctx := testContext()

	invoice := newInvoice(seedUser(t, db, "Borrower"), domain.InvoiceStatusOpen)
	require.NoError(t, invoices.Create(ctx, invoice))

	offer := newOffer(invoice.ID, seedUser(t, db, "Lender"), 9000, time.Now().Add(time.Hour))
	require.NoError(t, offers.Create(ctx, offer))

	withdrawn, err := offers.Withdraw(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusWithdrawn, withdrawn.Status)

	_, err = offers.Withdraw(ctx, offer.ID)
	assert.ErrorIs(t, err, customError.ErrOfferUnavailable)
}

func TestOfferRepository_ListByInvoice(t *testing.T) {
	db := setupTestDB(t)
	invoices := repository.NewInvoiceRepository(db)
	offers := repository.NewOfferRepository(db, 5*time.Second)
	ctx := testContext()

	invoice := newInvoice(seedUser(t, db, "Borrower"), domain.InvoiceStatusOpen)
	require.NoError(t, invoices.Create(ctx, invoice))

	l1 := seedUser(t, db, "Lender One")
	l2 := seedUser(t, db, "Lender Two")
	active := newOffer(invoice.ID, l1, 9000, time.Now().Add(time.Hour))
	withdrawn := newOffer(invoice.ID, l2, 8500, time.Now().Add(time.Hour))
	require.NoError(t, offers.Create(ctx, active))
	require.NoError(t, offers.Create(ctx, withdrawn))
	_, err := offers.Withdraw(ctx, withdrawn.ID)
	require.NoError(t, err)

	all, err := offers.ListByInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyActive, err := offers.ListByInvoice(ctx, invoice.ID, domain.OfferStatusActive)
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)

	mine, err := offers.ListByInvoiceAndLender(ctx, invoice.ID, l2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, withdrawn.ID, mine[0].ID)

	byLender, err := offers.ListByLender(ctx, l1)
	require.NoError(t, err)
	assert.Len(t, byLender, 1)
}

func TestOfferRepository_SweepExpiredIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	invoices := repository.NewInvoiceRepository(db)
	offers := repository.NewOfferRepository(db, 5*time.Second)
	ctx := testContext()

	invoice := newInvoice(seedUser(t, db, "Borrower"), domain.InvoiceStatusOpen)
	require.NoError(t, invoices.Create(ctx, invoice))

	now := time.Now().UTC()
	stale := newOffer(invoice.ID, seedUser(t, db, "Lender One"), 9000, now.Add(-time.Minute))
	fresh := newOffer(invoice.ID, seedUser(t, db, "Lender Two"), 8500, now.Add(time.Hour))
	require.NoError(t, offers.Create(ctx, stale))
	require.NoError(t, offers.Create(ctx, fresh))

	count, err := offers.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = offers.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	assert.Equal(t, domain.OfferStatusExpired, offerStatus(t, db, stale.ID))
	assert.Equal(t, domain.OfferStatusActive, offerStatus(t, db, fresh.ID))
}

func TestOfferRepository_Create_RequiresOpenInvoice(t *testing.T) {
	db := setupTestDB(t)
	invoices := repository.NewInvoiceRepository(db)
	offers := repository.NewOfferRepository(db, 5*time.Second)
	ctx := testContext()

	borrower := seedUser(t, db, "Borrower")
	lender := seedUser(t, db, "Lender")

	tests := []struct {
		name        string
		status      string
		expectedErr error
	}{
		{name: "draft", status: domain.InvoiceStatusDraft, expectedErr: customError.ErrInvoiceNotOpen},
		{name: "offer accepted", status: domain.InvoiceStatusOfferAccepted, expectedErr: customError.ErrInvoiceNotOpen},
		{name: "open", status: domain.InvoiceStatusOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice := newInvoice(borrower, tt.status)
			require.NoError(t, invoices.Create(ctx, invoice))

			err := offers.Create(ctx, newOffer(invoice.ID, lender, 9000, time.Now().Add(time.Hour)))

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("missing invoice", func(t *testing.T) {
		err := offers.Create(ctx, newOffer(uuid.New(), lender, 9000, time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestOfferRepository_Create_WaitsForConcurrentAccept(t *testing.T) {
	db := setupTestDB(t)
	invoices := repository.NewInvoiceRepository(db)
	offers := repository.NewOfferRepository(db, 5*time.Second)
	ctx := testContext()

	invoice := newInvoice(seedUser(t, db, "Borrower"), domain.InvoiceStatusOpen)
	require.NoError(t, invoices.Create(ctx, invoice))
	lender := seedUser(t, db, "Late Lender")

	// Hold the invoice the way an accept does, then close it.
	accept, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer accept.Rollback()
	_, err = accept.ExecContext(ctx, "SELECT status FROM invoices WHERE id = $1 FOR UPDATE", invoice.ID)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- offers.Create(ctx, newOffer(invoice.ID, lender, 9000, time.Now().Add(time.Hour)))
	}()

	select {
	case err := <-done:
		t.Fatalf("create finished while the invoice was locked: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	_, err = accept.ExecContext(ctx, "UPDATE invoices SET status = 'offer_accepted' WHERE id = $1", invoice.ID)
	require.NoError(t, err)
	require.NoError(t, accept.Commit())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, customError.ErrInvoiceNotOpen)
	case <-time.After(5 * time.Second):
		t.Fatal("create did not finish after the accept committed")
	}

	var active int
	require.NoError(t, db.Get(&active, "SELECT count(*) FROM funding_offers WHERE invoice_id = $1 AND status = 'active'", invoice.ID))
	assert.Equal(t, 0, active)
}
