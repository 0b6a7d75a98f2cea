package mobile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
)

// Session is the paired state of the handheld app
type Session struct {
	Client *Client
	Batch  *services.BatchDeliveryService
	Log    *zap.Logger
}

// Resume opens a session against the gateway saved in store
func Resume(store *PairingStore, timeout time.Duration, log *zap.Logger) (*Session, error) {
	d, err := store.Load()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	client := NewClient(d, timeout, log.Named("gateway"))
	log.Info("paired gateway", zap.String("address", d.String()))
	return &Session{
		Client: client,
		Batch:  services.NewBatchDeliveryService(client, log.Named("batch")),
		Log:    log,
	}, nil
}

// DeliverSelected hands several packages to one person. Each id is sent on its own; the report
// lists which ones the gateway accepted.
func (s *Session) DeliverSelected(ctx context.Context, ids []uint, porterID uint, retrievedBy, notes string) (*services.BatchReport, error) {
	return s.Batch.DeliverAll(ctx, services.BatchRequest{
		IDs:           ids,
		DeliveredByID: porterID,
		DeliveredAt:   time.Now(),
		RetrievedBy:   retrievedBy,
		Notes:         notes,
	})
}
