package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswap/skillswap-server/internal/models"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByEmail retrieves a user by email, including the password hash,
// or nil when no account has that email. Used by signup and login only;
// every other read goes through GetUserByID.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %v", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID with the password projected out.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %v", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and bumps updatedAt.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Error("Failed to update user profile")
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// SetActive flips the isActive flag on a user. Admin only at the call site.
func (r *UserRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update user status: %v", err)
	}
	return result.MatchedCount > 0, nil
}

// UpdateRatingAggregate stores a recomputed rating mean and review count.
func (r *UserRepository) UpdateRatingAggregate(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "reviewCount": reviewCount, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update rating aggregate: %v", err)
	}
	return nil
}

// buildSearchFilter assembles the browse query: only public, active users,
// optionally narrowed by a case-insensitive skill match (offered OR wanted)
// and a location match.
func buildSearchFilter(skill, location string) bson.M {
	filter := bson.M{"isPublic": true, "isActive": true}

	if skill != "" {
		filter["$or"] = []bson.M{
			{"skillsOffered": bson.M{"$regex": skill, "$options": "i"}},
			{"skillsWanted": bson.M{"$regex": skill, "$options": "i"}},
		}
	}
	if location != "" {
		filter["location"] = bson.M{"$regex": location, "$options": "i"}
	}

	return filter
}

// SearchUsers runs a paginated browse query and returns the page plus the
// total number of matching users.
func (r *UserRepository) SearchUsers(ctx context.Context, skill, location string, page, limit int) ([]models.User, int64, error) {
	filter := buildSearchFilter(skill, location)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %v", err)
	}

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if users == nil {
		users = []models.User{}
	}

	return users, total, nil
}

// GetUsersByIDs fetches the public projection of users for a list of IDs.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "profilePhoto": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by IDs: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.PublicUser
	for cursor.Next(ctx) {
		var user models.PublicUser
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// GetAllUsers returns every user with passwords projected out. Admin only.
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
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
	return users, nil
}
