package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

const collectionLocations = "locations"

type LocationRepository struct {
	col *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{col: db.Collection(collectionLocations)}
}

type locationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	State     string             `bson:"state"`
	City      string             `bson:"city"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *locationDoc) toDomain() *domain.Location {
	return &domain.Location{
		ID:        d.ID.Hex(),
		State:     d.State,
		City:      d.City,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *LocationRepository) Create(ctx context.Context, location *domain.Location) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := locationDoc{
		State:     location.State,
		City:      location.City,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, translateWriteError(err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id string) (*domain.Location, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc locationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("find location: %w", err)
	}
	return doc.toDomain(), nil
}

// List runs the filtered location query with the requested sort order and
// projection.
func (r *LocationRepository) List(ctx context.Context, filter ports.LocationFilter) ([]*domain.Location, error) {
	query := bson.M{}
	if filter.State != "" {
		query["state"] = caseInsensitive(filter.State)
	}
	if filter.City != "" {
		query["city"] = caseInsensitive(filter.City)
	}

	opts := options.Find()
	if s := buildSort(filter.Sort); len(s) > 0 {
		opts = opts.SetSort(s)
	}
	if p := buildProjection(filter.Select); len(p) > 0 {
		opts = opts.SetProjection(p)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer cursor.Close(ctx)

	locations := make([]*domain.Location, 0)
	for cursor.Next(ctx) {
		var doc locationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		locations = append(locations, doc.toDomain())
	}
	return locations, cursor.Err()
}

func (r *LocationRepository) Update(ctx context.Context, id string, update ports.LocationUpdate) (*domain.Location, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.State != nil {
		set["state"] = *update.State
	}
	if update.City != nil {
		set["city"] = *update.City
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc locationDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, translateWriteError(err)
	}
	return doc.toDomain(), nil
}

// Delete removes the location and returns the deleted document.
func (r *LocationRepository) Delete(ctx context.Context, id string) (*domain.Location, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc locationDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("delete location: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique index backing city uniqueness. The index
// is global, not scoped to (state, city); the constraint is inherited as-is.
func (r *LocationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "state", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
