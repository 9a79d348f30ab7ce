package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/models"
)

const CustomersCollection = "customers"

var _ CustomerRepository = (*MongoCustomerRepo)(nil)

type MongoCustomerRepo struct {
	collection *mongo.Collection
}

func NewMongoCustomerRepo(db *mongo.Database) *MongoCustomerRepo {
	return &MongoCustomerRepo{collection: db.Collection(CustomersCollection)}
}

func (r *MongoCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict("Username or account number already exists")
	}
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}

	return nil
}

func (r *MongoCustomerRepo) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoCustomerRepo) FindByUsername(ctx context.Context, username string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoCustomerRepo) findOne(ctx context.Context, filter bson.M) (*models.Customer, error) {
	var c models.Customer

	err := r.collection.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("No customer found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding customer: %w", err)
	}

	return &c, nil
}
