package rating

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"skilllink/internal/domain/request"
	"skilllink/internal/pkg/utils"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RateAndFinalize records the client's score and closes the request.
// The rating insert, the FINALIZADO transition and the worker aggregate
// commit together or not at all.
func (s *Service) RateAndFinalize(ctx context.Context, actorID, requestID int64, score int, comment string) (*Result, error) {
	if score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return nil, ErrCommentTooLong
	}

	var out Result
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		found, err := tx.LockRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if !found {
			return request.ErrRequestNotFound
		}
		sr, err := tx.Requests().Get(ctx, requestID)
		if err != nil {
			return err
		}
		if sr.ClientID != actorID {
			return request.ErrNotClient
		}
		if !request.CanTransition(sr.State, request.StateCompleted) {
			return ErrNotRateable
		}
		rated, err := tx.ExistsFor(ctx, requestID)
		if err != nil {
			return err
		}
		if rated {
			return ErrAlreadyRated
		}

		rt := &Rating{RequestID: requestID, Score: score, Comment: comment}
		if err := tx.Create(ctx, rt); err != nil {
			return err
		}
		moved, err := tx.Requests().Transition(ctx, requestID, []request.State{request.StatePending, request.StateAccepted}, request.StateCompleted)
		if err != nil {
			return err
		}
		if !moved {
			return ErrNotRateable
		}
		agg, err := tx.RecomputeWorker(ctx, sr.WorkerID)
		if err != nil {
			return err
		}
		out = Result{Rating: rt, Worker: agg}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("rating: request_id=%d score=%d worker_id=%d average=%.2f count=%d",
		requestID, score, out.Worker.WorkerID, out.Worker.AverageRating, out.Worker.RatingCount)
	return &out, nil
}

// ListWorkerRatings returns the worker's ratings, newest first.
func (s *Service) ListWorkerRatings(ctx context.Context, workerID int64, limit int) ([]View, error) {
	return s.repo.ListByWorker(ctx, workerID, utils.ClampLimit(limit, defaultListLimit, maxListLimit))
}
