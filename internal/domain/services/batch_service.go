package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deliverer applies one delivery. PackageService implements it in-process;
// the mobile gateway client implements it over HTTP.
type Deliverer interface {
	Deliver(ctx context.Context, id uint, in DeliveryInput) error
}

// FailureReason classifies why one item of a batch did not transition
type FailureReason string

const (
	ReasonAlreadyDelivered FailureReason = "already_delivered"
	ReasonNotFound         FailureReason = "not_found"
	ReasonValidation       FailureReason = "validation"
	ReasonTransport        FailureReason = "transport"
)

// BatchRequest is one multi-select delivery: many ids, shared delivery metadata
type BatchRequest struct {
	IDs           []uint
	DeliveredByID uint
	DeliveredAt   time.Time
	RetrievedBy   string
	Notes         string
}

// BatchFailure reports one id that did not transition
type BatchFailure struct {
	ID      uint          `json:"id"`
	Reason  FailureReason `json:"reason"`
	Message string        `json:"message"`
}

// BatchReport aggregates the per-item outcomes of a batch
type BatchReport struct {
	BatchID   string         `json:"batch_id"`
	Succeeded []uint         `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// SucceededCount returns the number of delivered items
func (r *BatchReport) SucceededCount() int {
	return len(r.Succeeded)
}

// FailedCount returns the number of failed items
func (r *BatchReport) FailedCount() int {
	return len(r.Failed)
}

// BatchDeliveryService fans one delivery out across many packages.
// Items are delivered independently: a failing item never blocks or rolls back the others.
type BatchDeliveryService struct {
	Deliverer Deliverer
	Log       *zap.Logger
}

// NewBatchDeliveryService creates a coordinator over d
func NewBatchDeliveryService(d Deliverer, log *zap.Logger) *BatchDeliveryService {
	return &BatchDeliveryService{
		Deliverer: d,
		Log:       log,
	}
}

// DeliverAll delivers every id in order and reports per-item outcomes.
// Once ctx is done no further calls are issued; the remaining ids are reported as transport failures.
func (s *BatchDeliveryService) DeliverAll(ctx context.Context, req BatchRequest) (*BatchReport, error) {
	if len(req.IDs) == 0 {
		return nil, ErrEmptySelection
	}

	report := &BatchReport{
		BatchID:   uuid.NewString(),
		Succeeded: make([]uint, 0, len(req.IDs)),
		Failed:    make([]BatchFailure, 0),
	}
	in := DeliveryInput{
		DeliveredByID: req.DeliveredByID,
		DeliveredAt:   req.DeliveredAt,
		RetrievedBy:   req.RetrievedBy,
		Notes:         req.Notes,
	}

	for _, id := range req.IDs {
		if err := ctx.Err(); err != nil {
			report.Failed = append(report.Failed, BatchFailure{ID: id, Reason: ReasonTransport, Message: err.Error()})
			continue
		}

		if err := s.Deliverer.Deliver(ctx, id, in); err != nil {
			report.Failed = append(report.Failed, BatchFailure{ID: id, Reason: ClassifyFailure(err), Message: failureMessage(err)})
			continue
		}
		report.Succeeded = append(report.Succeeded, id)
	}

	s.Log.Info("batch delivery finished",
		zap.String("batch_id", report.BatchID),
		zap.Uint("delivered_by", req.DeliveredByID),
		zap.Int("succeeded", report.SucceededCount()),
		zap.Int("failed", report.FailedCount()))
	return report, nil
}

// ClassifyFailure maps a delivery error onto a batch failure reason
func ClassifyFailure(err error) FailureReason {
	switch {
	case errors.Is(err, ErrAlreadyDelivered):
		return ReasonAlreadyDelivered
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrReference):
		return ReasonValidation
	default:
		return ReasonTransport
	}
}

// failureMessage keeps driver text out of reports
func failureMessage(err error) string {
	if errors.Is(err, ErrDatabase) {
		return ErrDatabase.Error()
	}
	return err.Error()
}
