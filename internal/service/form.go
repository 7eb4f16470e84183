package service

import (
	"context"

	"github.com/avelune/formgate/internal/repository"
	"github.com/avelune/formgate/internal/server"
	"github.com/rs/zerolog"
)

// FormStore is the narrow persistence contract FormService consumes.
// *repository.FormRepository satisfies it; tests substitute an
// in-memory fake.
type FormStore interface {
	Save(ctx context.Context, entry *repository.FormEntry) error
	GetByID(ctx context.Context, id int64) (*repository.FormEntry, error)
	Delete(ctx context.Context, entry *repository.FormEntry) error
	List(ctx context.Context, filter repository.ListFilter) ([]repository.FormEntry, error)
}

// Notifier publishes out-of-band notifications about new submissions.
// *job.JobService satisfies it with an asynq-backed implementation.
type Notifier interface {
	NotifyFormReceived(ctx context.Context, entryID, customerID int64, comment string) error
}

// FormService owns the form-submission business logic: persisting
// entries, fetching and deleting them for the admin surface, and
// kicking off the owner notification.
type FormService struct {
	server   *server.Server
	store    FormStore
	notifier Notifier
	logger   *zerolog.Logger
}

// NewFormService constructs a FormService. notifier may be nil, in
// which case submissions persist without notifying anyone (used in
// tests and when the queue is deliberately disabled).
func NewFormService(s *server.Server, store FormStore, notifier Notifier) *FormService {
	return &FormService{
		server:   s,
		store:    store,
		notifier: notifier,
		logger:   s.Logger,
	}
}

// SubmitForm constructs a fresh entry from the submitted values,
// persists it, and enqueues the owner notification.
//
// The notification is best effort: a queue outage must never fail a
// submission that already hit the database, so enqueue errors are
// logged and swallowed.
func (svc *FormService) SubmitForm(ctx context.Context, customerID int64, comment string) (*repository.FormEntry, error) {
	entry := &repository.FormEntry{
		CustomerID: customerID,
		Comment:    comment,
	}

	if err := svc.store.Save(ctx, entry); err != nil {
		return nil, err
	}

	if svc.notifier != nil {
		if err := svc.notifier.NotifyFormReceived(ctx, entry.ID, entry.CustomerID, entry.Comment); err != nil {
			svc.logger.Error().
				Err(err).
				Int64("entry_id", entry.ID).
				Msg("failed to enqueue form-received notification")
		}
	}

	return entry, nil
}

// GetEntry fetches one entry by id. A missing entry surfaces as the
// store's not-found error, which the global error handler maps to 404.
func (svc *FormService) GetEntry(ctx context.Context, id int64) (*repository.FormEntry, error) {
	return svc.store.GetByID(ctx, id)
}

// DeleteEntry removes the entry with the given id. The entry is
// fetched first, so a missing id reads as not-found rather than a
// delete failure.
func (svc *FormService) DeleteEntry(ctx context.Context, id int64) error {
	entry, err := svc.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return svc.store.Delete(ctx, entry)
}

// ListEntries returns a page of entries per the filter.
func (svc *FormService) ListEntries(ctx context.Context, filter repository.ListFilter) ([]repository.FormEntry, error) {
	return svc.store.List(ctx, filter)
}
