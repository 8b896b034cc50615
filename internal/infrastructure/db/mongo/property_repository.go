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

const collectionProperties = "properties"

// PropertyRepository persists property listings. It also reads the locations
// and users collections to populate references on the way out.
type PropertyRepository struct {
	col       *mongo.Collection
	locations *mongo.Collection
	users     *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{
		col:       db.Collection(collectionProperties),
		locations: db.Collection(collectionLocations),
		users:     db.Collection(collectionUsers),
	}
}

type propertyDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Price           int64              `bson:"price"`
	Location        primitive.ObjectID `bson:"location"`
	Announcer       primitive.ObjectID `bson:"announcer"`
	AnnounceType    string             `bson:"announceType"`
	PetAllowed      bool               `bson:"petAllowed"`
	NumberBedrooms  int                `bson:"numberBedrooms"`
	NumberBathrooms int                `bson:"numberBathrooms"`
	HasGarage       bool               `bson:"hasGarage"`
	Images          []string           `bson:"images"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (d *propertyDoc) toDomain() *domain.Property {
	p := &domain.Property{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		Price:           d.Price,
		AnnounceType:    domain.AnnounceType(d.AnnounceType),
		PetAllowed:      d.PetAllowed,
		NumberBedrooms:  d.NumberBedrooms,
		NumberBathrooms: d.NumberBathrooms,
		HasGarage:       d.HasGarage,
		Images:          d.Images,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if !d.Location.IsZero() {
		p.LocationID = d.Location.Hex()
	}
	if !d.Announcer.IsZero() {
		p.AnnouncerID = d.Announcer.Hex()
	}
	return p
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	locationID, err := primitive.ObjectIDFromHex(property.LocationID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	announcerID, err := primitive.ObjectIDFromHex(property.AnnouncerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := propertyDoc{
		Title:           property.Title,
		Description:     property.Description,
		Price:           property.Price,
		Location:        locationID,
		Announcer:       announcerID,
		AnnounceType:    string(property.AnnounceType),
		PetAllowed:      property.PetAllowed,
		NumberBedrooms:  property.NumberBedrooms,
		NumberBathrooms: property.NumberBathrooms,
		HasGarage:       property.HasGarage,
		Images:          property.Images,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, translateWriteError(err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByID returns the property with its announcer populated.
func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}

	property := doc.toDomain()
	if !doc.Announcer.IsZero() {
		var announcer userDoc
		err := r.users.FindOne(ctx, bson.M{"_id": doc.Announcer}).Decode(&announcer)
		if err == nil {
			property.Announcer = announcer.toDomain()
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("populate announcer: %w", err)
		}
	}
	return property, nil
}

// List runs the filtered, sorted, projected and paged query, then populates
// each property's location in one batched lookup.
func (r *PropertyRepository) List(ctx context.Context, filter ports.PropertyFilter) ([]*domain.Property, error) {
	query := buildPropertyQuery(filter)
	opts := applyListOptions(options.Find(), filter.Sort, filter.Select, filter.Page, filter.Limit)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties, err := r.decodeAll(ctx, cursor)
	if err != nil {
		return nil, err
	}
	if err := r.populateLocations(ctx, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// FindByIDs returns the properties matching ids with locations populated.
// Unknown ids are skipped; malformed ids fail with ErrInvalidID.
func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Property, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Property{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties, err := r.decodeAll(ctx, cursor)
	if err != nil {
		return nil, err
	}
	if err := r.populateLocations(ctx, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) FindByAnnouncer(ctx context.Context, announcerID string) ([]*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(announcerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"announcer": oid})
	if err != nil {
		return nil, fmt.Errorf("find properties by announcer: %w", err)
	}
	defer cursor.Close(ctx)

	properties, err := r.decodeAll(ctx, cursor)
	if err != nil {
		return nil, err
	}
	if err := r.populateLocations(ctx, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) Update(ctx context.Context, id string, update ports.PropertyUpdate) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.LocationID != nil {
		lid, err := primitive.ObjectIDFromHex(*update.LocationID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		set["location"] = lid
	}
	if update.AnnounceType != nil {
		set["announceType"] = string(*update.AnnounceType)
	}
	if update.PetAllowed != nil {
		set["petAllowed"] = *update.PetAllowed
	}
	if update.NumberBedrooms != nil {
		set["numberBedrooms"] = *update.NumberBedrooms
	}
	if update.NumberBathrooms != nil {
		set["numberBathrooms"] = *update.NumberBathrooms
	}
	if update.HasGarage != nil {
		set["hasGarage"] = *update.HasGarage
	}
	if update.Images != nil {
		set["images"] = update.Images
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("update property: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("delete property: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Property, error) {
	properties := make([]*domain.Property, 0)
	for cursor.Next(ctx) {
		var doc propertyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		properties = append(properties, doc.toDomain())
	}
	return properties, cursor.Err()
}

// populateLocations resolves the location reference of each property with a
// single $in query over the distinct location ids.
func (r *PropertyRepository) populateLocations(ctx context.Context, properties []*domain.Property) error {
	ids := make([]primitive.ObjectID, 0, len(properties))
	seen := make(map[string]struct{}, len(properties))
	for _, p := range properties {
		if p.LocationID == "" {
			continue
		}
		if _, ok := seen[p.LocationID]; ok {
			continue
		}
		seen[p.LocationID] = struct{}{}
		oid, err := primitive.ObjectIDFromHex(p.LocationID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := r.locations.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("populate locations: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[string]*domain.Location, len(ids))
	for cursor.Next(ctx) {
		var doc locationDoc
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("decode location: %w", err)
		}
		byID[doc.ID.Hex()] = doc.toDomain()
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	for _, p := range properties {
		p.Location = byID[p.LocationID]
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list filters.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "announcer", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
