package outbox_test

import (
	"context"
	"testing"
	"time"

	"go-inventory/internal/messaging/outbox"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (outbox.Repository, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	xdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { _ = xdb.Close() })
	return outbox.NewRepository(xdb), mock, xdb
}

func pendingEvent() outbox.Event {
	return outbox.Event{
		ID:            "6f1c1d7e-0000-4000-8000-000000000001",
		RequestID:     "req-1",
		AggregateType: "product",
		AggregateID:   "6f1c1d7e-0000-4000-8000-0000000000aa",
		EventType:     "product_created",
		Topic:         "product-created",
		Payload:       []byte(`{"code":"P1"}`),
		Status:        outbox.StatusPending,
	}
}

func TestRepository_CreateInTx(t *testing.T) {
	repo, mock, xdb := newRepo(t)
	ctx := context.Background()
	ev := pendingEvent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(ev.ID, ev.RequestID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := xdb.DB.BeginTx(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, repo.WithTx(tx).Create(ctx, ev))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateRejectsInvalidEvent(t *testing.T) {
	repo, mock, _ := newRepo(t)

	ev := pendingEvent()
	ev.Topic = ""

	err := repo.Create(context.Background(), ev)

	assert.EqualError(t, err, "outbox topic is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListPending(t *testing.T) {
	repo, mock, _ := newRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("e1", "req-1", "product", "p1", "product_created", "product-created", []byte(`{}`), "pending", 0, now)

	mock.ExpectQuery("FROM outbox_events").
		WithArgs(outbox.StatusPending, outbox.StatusFailed, outbox.MaxRetries, 50).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "product-created", events[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkSentAndFailed(t *testing.T) {
	repo, mock, _ := newRepo(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("e1", outbox.StatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("retry_count = retry_count \\+ 1").
		WithArgs("e2", outbox.StatusFailed, "broker down").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkSent(ctx, "e1"))
	assert.NoError(t, repo.MarkFailed(ctx, "e2", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
