package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user. Duplicate username or email surfaces as
// apperr.ErrConflict via the unique indexes.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user with this username or email: %w", apperr.ErrConflict)
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user by id: %v", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user by username: %v", err)
	}
	return &user, nil
}

// SearchUsers finds users whose username or email contains the query,
// case-insensitively.
func (r *UserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"username": pattern},
		{"email": pattern},
	}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users = append(users, user)
	}
	return users, cursor.Err()
}

// UpdateUser applies the given field updates to a user.
func (r *UserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	updates["updated_at"] = time.Now()
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user with this username or email: %w", apperr.ErrConflict)
		}
		logrus.WithError(err).Error("Failed to update user")
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	return r.GetUserByID(ctx, id)
}
