package repository

import (
	"alcyxob/run-planner/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// PlanRepository defines the interface for interacting with stored training
// plan records.
type PlanRepository interface {
	Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRecord, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PlanRecord, error)
	Update(ctx context.Context, record *domain.PlanRecord) error
	Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error // Ensure the owner holds the plan
}
