package queries

import (
	"context"
	"errors"

	"github.com/pulseboard/data-ingestor/internal/loaders"
	"github.com/pulseboard/data-ingestor/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const customersCollection = "customers"

// MongoDB error code for Unauthorized.
const codeUnauthorized = 13

// CustomerWriter persists canonical customer records into the customers
// collection, one document per external customer id.
type CustomerWriter struct {
	db *loaders.MongoClient
}

func NewCustomerWriter(db *loaders.MongoClient) *CustomerWriter {
	return &CustomerWriter{db: db}
}

// Upsert writes the full record under its external id. An existing document
// with the same id is replaced entirely, never merged. No retries: the
// caller decides what a failure means.
func (w *CustomerWriter) Upsert(ctx context.Context, record *types.CustomerRecord) error {
	doc := record.Document()
	doc["_id"] = record.ID

	_, err := w.db.Collection(customersCollection).ReplaceOne(ctx,
		bson.M{"_id": record.ID},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return &types.StorageError{Kind: classifyStorageError(err), Err: err}
	}
	return nil
}

// classifyStorageError buckets a driver error for operator diagnostics.
// The classification never reaches the client.
func classifyStorageError(err error) types.StorageErrorKind {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) {
		return types.StorageErrConnectivity
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(codeUnauthorized) {
		return types.StorageErrPermission
	}
	return types.StorageErrUnspecified
}
