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

const StaffCollection = "staff"

var _ StaffRepository = (*MongoStaffRepo)(nil)

type MongoStaffRepo struct {
	collection *mongo.Collection
}

func NewMongoStaffRepo(db *mongo.Database) *MongoStaffRepo {
	return &MongoStaffRepo{collection: db.Collection(StaffCollection)}
}

func (r *MongoStaffRepo) Create(ctx context.Context, s *models.Staff) error {
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return errUsernameTaken()
	}
	if err != nil {
		return fmt.Errorf("inserting staff: %w", err)
	}

	return nil
}

func (r *MongoStaffRepo) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoStaffRepo) FindByUsername(ctx context.Context, username string) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoStaffRepo) findOne(ctx context.Context, filter bson.M) (*models.Staff, error) {
	var s models.Staff

	err := r.collection.FindOne(ctx, filter).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errStaffNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("finding staff: %w", err)
	}

	return &s, nil
}

func (r *MongoStaffRepo) Find(ctx context.Context, opts ...*StaffOptions) ([]*models.Staff, error) {
	opt := firstStaffOptions(opts)

	findOpts := helpers.NewMongoPaginate(opt.Page).
		SortQuery(bson.D{{Key: "username", Value: 1}}).
		BuildFindOptions()

	cursor, err := r.collection.Find(ctx, staffFilter(opt), findOpts)
	if err != nil {
		return nil, fmt.Errorf("finding staff: %w", err)
	}
	defer cursor.Close(ctx)

	staff := []*models.Staff{}
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("decoding staff: %w", err)
	}

	return staff, nil
}

func (r *MongoStaffRepo) Count(ctx context.Context, opts ...*StaffOptions) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, staffFilter(firstStaffOptions(opts)))
	if err != nil {
		return 0, fmt.Errorf("counting staff: %w", err)
	}
	return n, nil
}

func (r *MongoStaffRepo) Update(ctx context.Context, id string, u StaffUpdate) (*models.Staff, error) {
	set := bson.M{"updatedAt": u.UpdatedAt}
	if u.Username != nil {
		set["username"] = *u.Username
	}
	if u.PasswordHash != nil {
		set["password"] = *u.PasswordHash
	}
	if u.Role != nil {
		set["role"] = *u.Role
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s models.Staff
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&s)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, errStaffNotFound()
	case mongo.IsDuplicateKeyError(err):
		return nil, errUsernameTaken()
	case err != nil:
		return nil, fmt.Errorf("updating staff %s: %w", id, err)
	}

	return &s, nil
}

func (r *MongoStaffRepo) Delete(ctx context.Context, id string) (*models.Staff, error) {
	var s models.Staff

	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errStaffNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("deleting staff %s: %w", id, err)
	}

	return &s, nil
}

func staffFilter(opt *StaffOptions) bson.M {
	filter := bson.M{}
	if len(opt.Roles) > 0 {
		filter["role"] = bson.M{"$in": opt.Roles}
	}
	return filter
}

func errStaffNotFound() error {
	return apperror.NotFound("No staff member found with that ID.")
}

func errUsernameTaken() error {
	return apperror.Conflict("Username already exists")
}
