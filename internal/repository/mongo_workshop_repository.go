package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/workshops-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const WorkshopsCollection = "workshops"

type MongoWorkshopRepository struct {
	coll *mongo.Collection
}

func NewMongoWorkshopRepository(db *mongo.Database) *MongoWorkshopRepository {
	return &MongoWorkshopRepository{coll: db.Collection(WorkshopsCollection)}
}

func (r *MongoWorkshopRepository) Create(ctx context.Context, workshop *models.Workshop) error {
	if _, err := r.coll.InsertOne(ctx, workshop); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert workshop: %w", err)
	}
	return nil
}

func (r *MongoWorkshopRepository) GetByTitle(ctx context.Context, title string) (*models.Workshop, error) {
	var workshop models.Workshop
	if err := r.coll.FindOne(ctx, bson.M{"eventTitle": title}).Decode(&workshop); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find workshop: %w", err)
	}
	return &workshop, nil
}

func (r *MongoWorkshopRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"eventTitle": title}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count workshops: %w", err)
	}
	return count > 0, nil
}

func (r *MongoWorkshopRepository) List(ctx context.Context, q WorkshopQuery) ([]models.Workshop, error) {
	filter, opts := mongoWorkshopFilter(q)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	workshops := []models.Workshop{}
	if err := cursor.All(ctx, &workshops); err != nil {
		return nil, fmt.Errorf("decode workshops: %w", err)
	}
	return workshops, nil
}

// mongoWorkshopFilter translates a query. Matching a scalar against the
// category array selects documents whose list contains it.
func mongoWorkshopFilter(q WorkshopQuery) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.CreatedBy != "" {
		filter["createdBy"] = q.CreatedBy
	}
	opts := options.Find()
	if q.SortByStartDate {
		opts.SetSort(bson.D{{Key: "eventStDate", Value: 1}})
	}
	return filter, opts
}

func (r *MongoWorkshopRepository) Update(ctx context.Context, workshop *models.Workshop) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": workshop.ID, "eventTitle": workshop.EventTitle}, workshop)
	if err != nil {
		return fmt.Errorf("update workshop: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoWorkshopRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"eventTitle": title})
	if err != nil {
		return 0, fmt.Errorf("delete workshop: %w", err)
	}
	return res.DeletedCount, nil
}
