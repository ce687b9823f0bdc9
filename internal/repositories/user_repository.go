package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/linkup/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user directory operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	// GetUsersByIDs returns the users that exist among ids, in no particular order.
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	// FindUsers returns up to limit users whose id is not in exclude, in store order.
	FindUsers(ctx context.Context, exclude []primitive.ObjectID, limit int64) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error)
	// AddConnection appends targetID to the user's connections unless it is
	// already there. It reports false when nothing was appended.
	AddConnection(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error)
	// RemoveConnection removes targetID from the user's connections and
	// reports false when it was not present.
	RemoveConnection(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user document
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by ID from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetUserByFirebaseUID retrieves the user linked to a Firebase account
func (r *MongoUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"firebase_uid": firebaseUID})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// GetUsersByIDs retrieves every user whose ID is in ids
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindUsers lists users outside exclude, capped at limit
func (r *MongoUserRepository) FindUsers(ctx context.Context, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	if exclude == nil {
		exclude = []primitive.ObjectID{}
	}
	findOptions := options.Find().SetLimit(limit).SetProjection(bson.M{
		"name": 1, "profilePicture": 1, "headline": 1, "location": 1, "skills": 1,
	})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$nin": exclude}}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile sets the non-empty fields of req and returns the updated user
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.ProfilePicture != "" {
		set["profilePicture"] = req.ProfilePicture
	}
	if req.Headline != "" {
		set["headline"] = req.Headline
	}
	if req.Location != "" {
		set["location"] = req.Location
	}
	if req.About != "" {
		set["about"] = req.About
	}
	if req.Experience != nil {
		set["experience"] = req.Experience
	}
	if req.Education != nil {
		set["education"] = req.Education
	}
	if req.Skills != nil {
		set["skills"] = req.Skills
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

// AddConnection pushes targetID only when it is not already a connection, so
// concurrent follows cannot produce duplicates or overwrite each other.
func (r *MongoUserRepository) AddConnection(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": userID, "connections": bson.M{"$ne": targetID}}
	update := bson.M{
		"$push": bson.M{"connections": targetID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("add connection: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// RemoveConnection pulls targetID from the connections array
func (r *MongoUserRepository) RemoveConnection(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": userID, "connections": targetID}
	update := bson.M{
		"$pull": bson.M{"connections": targetID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("remove connection: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
