package kafka

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEventMarshalsPayload(t *testing.T) {
	event, err := NewOutboxEvent("req-1", "payslip", "agg-1", "payroll.payslip.requested", "hr.payroll.payslip.requested.v1", map[string]string{
		"employee_id": "emp-1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"employee_id":"emp-1"}`, string(event.Payload))
	assert.NoError(t, ValidateOutboxEvent(event))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid, err := NewOutboxEvent("", "a", "b", "c", "topic", map[string]int{"x": 1})
	assert.NoError(t, err)

	cases := []struct {
		name    string
		mutate  func(e *OutboxEvent)
		wantErr bool
	}{
		{"valid", func(e *OutboxEvent) {}, false},
		{"missing id", func(e *OutboxEvent) { e.ID = "" }, true},
		{"missing topic", func(e *OutboxEvent) { e.Topic = "" }, true},
		{"empty payload", func(e *OutboxEvent) { e.Payload = nil }, true},
		{"bad status", func(e *OutboxEvent) { e.Status = "queued" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			err := ValidateOutboxEvent(e)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutboxCreateInsertsPendingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	event, err := NewOutboxEvent("req-1", "payroll_period", "agg-1", "payroll.period.locked", "hr.payroll.period.locked.v1", map[string]int{"month": 8})
	assert.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxCreateRejectsInvalidEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)

	// Tidak boleh sampai ke database.
	err = repo.Create(context.Background(), OutboxEvent{Status: OutboxStatusPending})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type", "topic",
		"payload", "status", "retry_count", "next_retry_at",
	}).AddRow(
		"evt-1", "payslip", "agg-1", "payroll.payslip.requested",
		"hr.payroll.payslip.requested.v1", []byte(`{}`), "pending", 0, now,
	).AddRow(
		"evt-2", "payroll_period", "agg-2", "payroll.period.locked",
		"hr.payroll.period.locked.v1", []byte(`{}`), "failed", 2, now,
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, 2, events[1].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxMarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-1", OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkSent(context.Background(), "evt-1"))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-2", OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkFailed(context.Background(), "evt-2", "broker unreachable"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
