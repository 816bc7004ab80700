package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/bistro/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUserExists is returned when a sign-up uses an email that is already
// registered.
var ErrUserExists = errors.New("repositories: user already exists")

// UserRepository handles the users collection.
type UserRepository struct {
	Repository[models.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Repository: NewRepository[models.User](db, "users")}
}

// FindByEmail looks up a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.FindOne(ctx, bson.M{"email": email})
}

// RoleByEmail resolves the stored role for an email, satisfying the
// middleware.RoleLookup interface. A missing user yields an empty role.
func (r *UserRepository) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := r.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Create inserts a new user unless the email is already registered, in which
// case it returns ErrUserExists. The role is forced to customer; promotion is
// a separate explicit mutation.
func (r *UserRepository) Create(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	_, err := r.FindByEmail(ctx, user.Email)
	if err == nil {
		return primitive.NilObjectID, ErrUserExists
	}
	if !errors.Is(err, ErrNotFound) {
		return primitive.NilObjectID, err
	}

	user.Role = models.RoleCustomer
	return r.Insert(ctx, user)
}

// PromoteToAdmin sets the admin role on the user with the given id.
func (r *UserRepository) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.UpdateByID(ctx, id, bson.M{"role": models.RoleAdmin})
}

var _ interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
} = (*UserRepository)(nil)
