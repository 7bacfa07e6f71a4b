package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-server/internal/models"
)

// stubUserStore lets tests script the store calls the service makes.
type stubUserStore struct {
	getByEmail func(email string) (*models.User, error)
	create     func(user *models.User) (*models.User, error)
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	return s.create(user)
}

func (s *stubUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.getByEmail(email)
}

func (s *stubUserStore) GetUserByID(context.Context, primitive.ObjectID) (*models.User, error) {
	return nil, errors.New("not scripted")
}

func (s *stubUserStore) UpdateProfile(context.Context, primitive.ObjectID, bson.M) error {
	return errors.New("not scripted")
}

func (s *stubUserStore) SearchUsers(context.Context, string, string, int, int) ([]models.User, int64, error) {
	return nil, 0, errors.New("not scripted")
}

func (s *stubUserStore) GetAllUsers(context.Context) ([]models.User, error) {
	return nil, errors.New("not scripted")
}

func (s *stubUserStore) SetActive(context.Context, primitive.ObjectID, bool) (bool, error) {
	return false, errors.New("not scripted")
}

func boolPtr(b bool) *bool { return &b }

func TestRegisterUserVisibility(t *testing.T) {
	tests := []struct {
		name       string
		isPublic   *bool
		wantPublic bool
	}{
		{"omitted defaults to public", nil, true},
		{"explicit opt-out is honored", boolPtr(false), false},
		{"explicit opt-in stays public", boolPtr(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored *models.User
			svc := &UserService{repo: &stubUserStore{
				getByEmail: func(string) (*models.User, error) { return nil, nil },
				create: func(user *models.User) (*models.User, error) {
					stored = user
					user.ID = primitive.NewObjectID()
					return user, nil
				},
			}}

			created, err := svc.RegisterUser(context.Background(),
				&models.User{Name: "Alice", Email: "alice@example.com"}, "secret", tt.isPublic)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPublic, stored.IsPublic)
			assert.Equal(t, tt.wantPublic, created.IsPublic)
			assert.True(t, created.IsActive)
		})
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc := &UserService{repo: &stubUserStore{
		getByEmail: func(string) (*models.User, error) {
			return &models.User{Email: "alice@example.com"}, nil
		},
	}}

	_, err := svc.RegisterUser(context.Background(),
		&models.User{Name: "Alice", Email: "alice@example.com"}, "secret", nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterUserLookupFailureIsInternal(t *testing.T) {
	svc := &UserService{repo: &stubUserStore{
		getByEmail: func(string) (*models.User, error) {
			return nil, errors.New("connection reset")
		},
	}}

	_, err := svc.RegisterUser(context.Background(),
		&models.User{Name: "Alice", Email: "alice@example.com"}, "secret", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestAuthenticateUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	account := func() *models.User {
		return &models.User{
			ID:             primitive.NewObjectID(),
			Email:          "alice@example.com",
			HashedPassword: string(hash),
			IsActive:       true,
		}
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc := &UserService{repo: &stubUserStore{
			getByEmail: func(string) (*models.User, error) { return account(), nil },
		}}

		user, err := svc.AuthenticateUser(context.Background(), "alice@example.com", "right-password")
		require.NoError(t, err)
		assert.Empty(t, user.HashedPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := &UserService{repo: &stubUserStore{
			getByEmail: func(string) (*models.User, error) { return nil, nil },
		}}

		_, err := svc.AuthenticateUser(context.Background(), "nobody@example.com", "right-password")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := &UserService{repo: &stubUserStore{
			getByEmail: func(string) (*models.User, error) { return account(), nil },
		}}

		_, err := svc.AuthenticateUser(context.Background(), "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc := &UserService{repo: &stubUserStore{
			getByEmail: func(string) (*models.User, error) {
				u := account()
				u.IsActive = false
				return u, nil
			},
		}}

		_, err := svc.AuthenticateUser(context.Background(), "alice@example.com", "right-password")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("store failure is internal, not a credential rejection", func(t *testing.T) {
		svc := &UserService{repo: &stubUserStore{
			getByEmail: func(string) (*models.User, error) {
				return nil, errors.New("connection reset")
			},
		}}

		_, err := svc.AuthenticateUser(context.Background(), "alice@example.com", "right-password")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Pagination
	}{
		{
			name: "first of several pages", page: 1, limit: 10, total: 25,
			want: Pagination{Current: 1, Total: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page", page: 2, limit: 10, total: 25,
			want: Pagination{Current: 2, Total: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last page", page: 3, limit: 10, total: 25,
			want: Pagination{Current: 3, Total: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "exact fit", page: 2, limit: 10, total: 20,
			want: Pagination{Current: 2, Total: 2, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result", page: 1, limit: 10, total: 0,
			want: Pagination{Current: 1, Total: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "single short page", page: 1, limit: 10, total: 4,
			want: Pagination{Current: 1, Total: 1, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}
