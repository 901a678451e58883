package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulseboard/data-ingestor/internal/types"
	"github.com/pulseboard/data-ingestor/internal/utils"
	"go.uber.org/zap"
)

// CustomerStore is the persistence surface the service depends on.
// The production implementation lives in internal/queries.
type CustomerStore interface {
	Upsert(ctx context.Context, record *types.CustomerRecord) error
}

type Service struct {
	store CustomerStore
}

func NewService(store CustomerStore) *Service {
	return &Service{store: store}
}

// SaveCustomer writes the canonical record to the document store. The write
// is an unconditional upsert keyed by the external customer id: repeated
// ingestion for the same id fully replaces the stored document, last write
// wins. Failures are logged with their classification and returned as-is for
// the handler to translate.
func (s *Service) SaveCustomer(ctx context.Context, record *types.CustomerRecord) error {
	if err := s.store.Upsert(ctx, record); err != nil {
		var storageErr *types.StorageError
		if errors.As(err, &storageErr) {
			utils.Zlog.Error("Failed to save customer",
				zap.String("customerId", record.ID),
				zap.String("kind", string(storageErr.Kind)),
				zap.Error(storageErr.Err))
		} else {
			utils.Zlog.Error("Failed to save customer",
				zap.String("customerId", record.ID),
				zap.Error(err))
		}
		return fmt.Errorf("save customer %s: %w", record.ID, err)
	}

	utils.Zlog.Info("Customer saved",
		zap.String("customerId", record.ID),
		zap.Int("passthroughFields", len(record.Extra)))
	return nil
}

// AcknowledgeOrder logs a validated order. Orders are not persisted by this
// pipeline yet; the endpoint intentionally validates and echoes only.
func (s *Service) AcknowledgeOrder(record *types.OrderRecord) {
	utils.Zlog.Info("Order received",
		zap.String("orderId", record.ID),
		zap.String("customerId", record.CustomerID),
		zap.Int("items", len(record.Items)),
		zap.Float64("totalAmount", record.TotalAmount),
		zap.String("currency", record.Currency))
}
