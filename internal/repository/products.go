package repository

import (
	"context"
	"regexp"
	"sort"

	"github.com/guttosm/parcel-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository reads and writes catalog products.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *MongoDB) *ProductRepository {
	return &ProductRepository{collection: db.Products}
}

var byCategoryThenName = options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})

// FindAll returns every product ordered by category and name.
func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return r.find(ctx, bson.M{}, byCategoryThenName)
}

// FindByCategory returns the products of one category, ignoring case.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	filter := bson.M{"category": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(category) + "$", Options: "i"}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

// FindByIDs returns the products whose IDs are listed. Missing IDs are
// simply absent from the result.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Categories lists the distinct product categories in order.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Upsert replaces or inserts products by ID in one bulk write.
func (r *ProductRepository) Upsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, len(products))
	for i, p := range products {
		writes[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(p).
			SetUpsert(true)
	}
	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}

// Count returns the number of catalog products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
