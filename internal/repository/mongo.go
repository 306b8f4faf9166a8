package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaziabulhasib/EasyPay-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepository implements UserRepository over the users
// collection.
type MongoUserRepository struct {
	users *mongo.Collection
}

// NewMongoUserRepository builds a repository on the given database.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection("users")}
}

func (r *MongoUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	// identifier 可以是 email 也可以是 mobile
	filter := bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"mobile": identifier},
	}}
	return r.findOne(ctx, filter)
}

func (r *MongoUserRepository) FindByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	var ors bson.A
	if email != "" {
		ors = append(ors, bson.M{"email": email})
	}
	if mobile != "" {
		ors = append(ors, bson.M{"mobile": mobile})
	}
	if len(ors) == 0 {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"$or": ors})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

func (r *MongoUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	cur, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
