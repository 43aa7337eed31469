package repository

import (
	"context"

	"github.com/guttosm/parcel-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CarrierRepository reads and writes shipping carriers.
type CarrierRepository struct {
	collection *mongo.Collection
}

// NewCarrierRepository creates a carrier repository.
func NewCarrierRepository(db *MongoDB) *CarrierRepository {
	return &CarrierRepository{collection: db.Carriers}
}

// FindAll returns every carrier ordered by ID.
func (r *CarrierRepository) FindAll(ctx context.Context) ([]model.Carrier, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	carriers := []model.Carrier{}
	if err := cursor.All(ctx, &carriers); err != nil {
		return nil, err
	}
	return carriers, nil
}

// Upsert replaces or inserts carriers by ID.
func (r *CarrierRepository) Upsert(ctx context.Context, carriers []model.Carrier) error {
	if len(carriers) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, len(carriers))
	for i, c := range carriers {
		writes[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": c.ID}).
			SetReplacement(c).
			SetUpsert(true)
	}
	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}

// Count returns the number of carriers.
func (r *CarrierRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
