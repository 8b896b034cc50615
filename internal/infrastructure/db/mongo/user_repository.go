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

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty"`
	Name                string               `bson:"name"`
	Email               string               `bson:"email"`
	Password            string               `bson:"password"`
	Role                string               `bson:"role"`
	PropertiesFavorited []primitive.ObjectID `bson:"propertiesFavorited"`
	CreatedAt           time.Time            `bson:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt"`
}

func (d *userDoc) toDomain() *domain.User {
	favorites := make([]string, 0, len(d.PropertiesFavorited))
	for _, id := range d.PropertiesFavorited {
		favorites = append(favorites, id.Hex())
	}
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         domain.ParseRole(d.Role),
		FavoriteIDs:  favorites,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Create inserts a new user. Name and email collide against unique indexes;
// violations surface as domain.DuplicateKeyError.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := userDoc{
		Name:                user.Name,
		Email:               user.Email,
		Password:            user.PasswordHash,
		Role:                string(user.Role),
		PropertiesFavorited: []primitive.ObjectID{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, translateWriteError(err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*domain.User, 0)
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	return users, cursor.Err()
}

// Update applies the non-nil fields and returns the updated user.
func (r *UserRepository) Update(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, translateWriteError(err)
	}
	return doc.toDomain(), nil
}

// AddFavorite appends the property id to the favorites set ($addToSet keeps
// the operation idempotent) and returns the updated user.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error) {
	return r.updateFavorites(ctx, userID, propertyID, "$addToSet")
}

// RemoveFavorite pulls the property id out of the favorites set.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error) {
	return r.updateFavorites(ctx, userID, propertyID, "$pull")
}

func (r *UserRepository) updateFavorites(ctx context.Context, userID, propertyID, op string) (*domain.User, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	pid, err := primitive.ObjectIDFromHex(propertyID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": uid},
		bson.M{
			op:     bson.M{"propertiesFavorited": pid},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update favorites: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique indexes backing name and email uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
