package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

const TransactionsCollection = "transactions"

var _ TransactionRepository = (*MongoTransactionRepo)(nil)

type MongoTransactionRepo struct {
	collection *mongo.Collection
}

func NewMongoTransactionRepo(db *mongo.Database) *MongoTransactionRepo {
	return &MongoTransactionRepo{collection: db.Collection(TransactionsCollection)}
}

func (r *MongoTransactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (r *MongoTransactionRepo) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	var t models.Transaction

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errTransactionNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", id, err)
	}

	return &t, nil
}

// Executes a Find operation sorted newest first.
func (r *MongoTransactionRepo) Find(ctx context.Context, opts ...*TransactionOptions) ([]*models.Transaction, error) {
	opt := firstTransactionOptions(opts)

	findOpts := helpers.NewMongoPaginate(opt.Page).
		SortQuery(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		BuildFindOptions()

	cursor, err := r.collection.Find(ctx, transactionFilter(opt), findOpts)
	if err != nil {
		return nil, fmt.Errorf("finding transactions: %w", err)
	}
	defer cursor.Close(ctx)

	transactions := []*models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}

	return transactions, nil
}

func (r *MongoTransactionRepo) Count(ctx context.Context, opts ...*TransactionOptions) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, transactionFilter(firstTransactionOptions(opts)))
	if err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

func (r *MongoTransactionRepo) UpdatePending(ctx context.Context, id string, u TransactionUpdate) (*models.Transaction, error) {
	set := bson.M{
		"status":    u.Status,
		"updatedAt": u.UpdatedAt,
	}
	if u.ReviewedBy != "" {
		set["reviewedBy"] = u.ReviewedBy
	}
	if u.RecipientReference != nil {
		set["recipientReference"] = *u.RecipientReference
	}
	if u.CustomerReference != nil {
		set["customerReference"] = *u.CustomerReference
	}
	if u.SwiftCode != nil {
		set["swiftCode"] = *u.SwiftCode
	}

	filter := bson.M{"_id": id, "status": models.StatusPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t models.Transaction
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("updating transaction %s: %w", id, err)
	}

	return &t, nil
}

func (r *MongoTransactionRepo) Delete(ctx context.Context, id string) (*models.Transaction, error) {
	var t models.Transaction

	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errTransactionNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("deleting transaction %s: %w", id, err)
	}

	return &t, nil
}

func transactionFilter(opt *TransactionOptions) bson.M {
	filter := bson.M{}

	if len(opt.Statuses) > 0 {
		filter["status"] = bson.M{"$in": opt.Statuses}
	}
	if opt.CustomerID != nil {
		filter["customerId"] = *opt.CustomerID
	}

	return filter
}

func errTransactionNotFound() error {
	return apperror.NotFound("No transaction found that matches that ID.")
}
