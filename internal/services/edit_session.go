package services

import (
	"context"
	"sync"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
)

// SessionState is the lifecycle state of an EditSession.
type SessionState int

const (
	SessionOpen SessionState = iota
	SessionSubmitting
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// ErrSessionClosed is returned when submitting through a closed EditSession.
var ErrSessionClosed = apperrors.WithMessage(apperrors.ErrInvalidInput, "edit session is closed")

// EditSession is one edit workflow for a single transaction. It accepts at
// most one submission and is closed afterwards, whether the submission
// succeeded or not.
type EditSession struct {
	reconciler ReconciliationServicer
	target     models.Transaction

	mu    sync.Mutex
	state SessionState
}

// NewEditSession opens an edit session for target.
func NewEditSession(reconciler ReconciliationServicer, target models.Transaction) *EditSession {
	return &EditSession{reconciler: reconciler, target: target, state: SessionOpen}
}

// Target returns the transaction being edited.
func (s *EditSession) Target() models.Transaction {
	return s.target
}

// State returns the current session state.
func (s *EditSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit reconciles edit against the session's target and closes the session.
func (s *EditSession) Submit(ctx context.Context, edit EditedFields, expectedVersion *int64) (*ReconciliationResult, error) {
	s.mu.Lock()
	if s.state != SessionOpen {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.state = SessionSubmitting
	s.mu.Unlock()
	defer s.Close()

	return s.reconciler.Reconcile(ctx, ReconciliationRequest{
		Target:          s.target,
		Edit:            edit,
		ExpectedVersion: expectedVersion,
	})
}

// Close abandons the session. A submission already in flight still completes.
// It is safe to call more than once.
func (s *EditSession) Close() {
	s.mu.Lock()
	s.state = SessionClosed
	s.mu.Unlock()
}
