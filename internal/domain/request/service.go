package request

import (
	"context"
	"log"
	"strings"

	"skilllink/internal/domain/catalog"
	"skilllink/internal/domain/profile"
)

// ServiceLookup resolves a service to the worker answering for it.
type ServiceLookup interface {
	LookupOwner(ctx context.Context, serviceID int64) (*catalog.Owner, error)
}

// Engine drives the request state machine.
type Engine struct {
	repo     Repository
	services ServiceLookup
}

func NewEngine(repo Repository, services ServiceLookup) *Engine {
	return &Engine{repo: repo, services: services}
}

// CreateRequest opens a PENDIENTE request. The worker is taken from the
// service; a caller-supplied worker id must agree with it. The open-request
// check and the insert share a transaction holding the client's row lock.
func (e *Engine) CreateRequest(ctx context.Context, clientID int64, in *CreateRequestInput) (*ServiceRequest, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	owner, err := e.services.LookupOwner(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if in.WorkerID != 0 && in.WorkerID != owner.WorkerID {
		return nil, ErrWorkerMismatch
	}
	if owner.WorkerID == clientID {
		return nil, ErrSelfRequest
	}

	sr := &ServiceRequest{
		ServiceID: owner.ServiceID,
		ClientID:  clientID,
		WorkerID:  owner.WorkerID,
		Message:   message,
		State:     StatePending,
	}
	err = e.repo.Transaction(ctx, func(tx Repository) error {
		found, err := tx.LockPerson(ctx, clientID)
		if err != nil {
			return err
		}
		if !found {
			return ErrClientNotFound
		}
		open, err := tx.HasOpen(ctx, clientID, owner.ServiceID)
		if err != nil {
			return err
		}
		if open {
			return ErrDuplicateRequest
		}
		return tx.Create(ctx, sr)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("request: created request_id=%d service_id=%d client_id=%d worker_id=%d", sr.ID, sr.ServiceID, clientID, sr.WorkerID)
	return sr, nil
}

// HasClientRequestedService reports whether the client has a PENDIENTE or
// ACEPTADA request for the service.
func (e *Engine) HasClientRequestedService(ctx context.Context, clientID, serviceID int64) (bool, error) {
	return e.repo.HasOpen(ctx, clientID, serviceID)
}

func (e *Engine) CancelRequest(ctx context.Context, actorID, requestID int64) (*ServiceRequest, error) {
	return e.move(ctx, actorID, requestID, StateCancelled, true)
}

func (e *Engine) AcceptRequest(ctx context.Context, actorID, requestID int64) (*ServiceRequest, error) {
	return e.move(ctx, actorID, requestID, StateAccepted, false)
}

func (e *Engine) RejectRequest(ctx context.Context, actorID, requestID int64) (*ServiceRequest, error) {
	return e.move(ctx, actorID, requestID, StateRejected, false)
}

func (e *Engine) move(ctx context.Context, actorID, requestID int64, to State, byClient bool) (*ServiceRequest, error) {
	sr, err := e.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if byClient && actorID != sr.ClientID {
		return nil, ErrNotClient
	}
	if !byClient && actorID != sr.WorkerID {
		return nil, ErrNotWorker
	}
	changed, err := e.repo.Transition(ctx, requestID, []State{StatePending}, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrInvalidTransition
	}
	log.Printf("request: request_id=%d %s -> %s actor_id=%d", requestID, sr.State, to, actorID)
	return e.repo.Get(ctx, requestID)
}

// ListRequestsFor returns requests where the person is client or worker, newest first.
func (e *Engine) ListRequestsFor(ctx context.Context, personID int64) ([]View, error) {
	return e.repo.ListFor(ctx, personID, false)
}

func (e *Engine) ListClientRequests(ctx context.Context, clientID int64) ([]View, error) {
	return e.repo.ListFor(ctx, clientID, true)
}

// GetRequest returns the request if actorID takes part in it.
func (e *Engine) GetRequest(ctx context.Context, actorID, requestID int64) (*View, error) {
	v, err := e.repo.GetView(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if actorID != v.ClientID && actorID != v.WorkerID {
		return nil, ErrNotParticipant
	}
	return v, nil
}

// UnreadNotifications counts requests that need the person's attention:
// answered or closed ones for clients, pending ones for workers.
func (e *Engine) UnreadNotifications(ctx context.Context, personID int64, role profile.Role) (int64, error) {
	if role.IsWorker() {
		counts, err := e.repo.CountByState(ctx, "worker_id", personID)
		if err != nil {
			return 0, err
		}
		return counts[StatePending], nil
	}
	counts, err := e.repo.CountByState(ctx, "client_id", personID)
	if err != nil {
		return 0, err
	}
	return counts[StateAccepted] + counts[StateRejected] + counts[StateCompleted], nil
}

func (e *Engine) WorkerDashboard(ctx context.Context, workerID int64) (*Dashboard, error) {
	counts, err := e.repo.CountByState(ctx, "worker_id", workerID)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{
		Pending:   counts[StatePending],
		Accepted:  counts[StateAccepted],
		Rejected:  counts[StateRejected],
		Cancelled: counts[StateCancelled],
		Completed: counts[StateCompleted],
	}
	for _, n := range counts {
		d.Total += n
	}
	return d, nil
}
