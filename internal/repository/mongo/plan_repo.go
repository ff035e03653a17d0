// internal/repository/mongo/plan_repo.go
package mongo

import (
	"alcyxob/run-planner/internal/domain"
	"alcyxob/run-planner/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "training_plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan record repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan record.
func (r *mongoPlanRepository) Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	if record.OwnerID == primitive.NilObjectID || record.Name == "" {
		return primitive.NilObjectID, errors.New("plan record requires ownerId and name")
	}
	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan record by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRecord, error) {
	var record domain.PlanRecord
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByOwnerID retrieves all plan records owned by a user, newest first.
func (r *mongoPlanRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PlanRecord, error) {
	var records []domain.PlanRecord
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice when the owner has no plans (not an error)
	return records, nil
}

// Update replaces the stored plan payload and name. Ownership and creation
// time are never touched by an update.
func (r *mongoPlanRepository) Update(ctx context.Context, record *domain.PlanRecord) error {
	if record.ID == primitive.NilObjectID {
		return errors.New("plan record ID is required for update")
	}

	filter := bson.M{"_id": record.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":      record.Name,
			"plan":      record.Plan,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan record. The filter requires both the plan ID and the
// owner, so a user can never delete someone else's plan.
func (r *mongoPlanRepository) Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || ownerID == primitive.NilObjectID {
		return errors.New("plan ID and owner ID are required for deletion")
	}

	filter := bson.M{
		"_id":     id,
		"ownerId": ownerID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		// Either the plan didn't exist or it belongs to someone else.
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The main query pattern: listing a user's plans newest-first
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; queries still work unindexed.
	}
}
