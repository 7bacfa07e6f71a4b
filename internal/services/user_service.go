package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-server/internal/models"
	"github.com/skillswap/skillswap-server/internal/repository"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// userStore is the slice of the user repository this service depends on.
type userStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, set bson.M) error
	SearchUsers(ctx context.Context, skill, location string, page, limit int) ([]models.User, int64, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error)
}

// UserService encapsulates the business logic for user accounts and the
// public browse/search listing.
type UserService struct {
	repo userStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// RegisterUser registers a new user after hashing their password. Profiles
// are public unless the signup explicitly opts out.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User, password string, isPublic *bool) (*models.User, error) {
	if user.Email == "" || user.Name == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !emailRegex.MatchString(user.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	existing, err := s.repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %v", err)
	}
	if existing != nil {
		logrus.WithField("email", user.Email).Warn("Email already in use")
		return nil, fmt.Errorf("%w: email already in use", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashed)

	if user.Role == "" {
		user.Role = "user"
	}
	user.IsPublic = true
	if isPublic != nil {
		user.IsPublic = *isPublic
	}
	user.IsActive = true
	user.Rating = 0
	user.ReviewCount = 0
	if user.SkillsOffered == nil {
		user.SkillsOffered = []string{}
	}
	if user.SkillsWanted == nil {
		user.SkillsWanted = []string{}
	}
	if user.Availability == nil {
		user.Availability = []string{}
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID": created.ID.Hex(),
		"role":   created.Role,
	}).Info("User registered successfully")

	return created, nil
}

// AuthenticateUser verifies credentials and returns the user on success.
// A lookup failure is an internal error, not a credential rejection.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %v", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	user.HashedPassword = ""
	return user, nil
}

// GetProfile fetches a user's own profile, password stripped.
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
// Email, password, role and _id can never be changed through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update *models.ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		set["name"] = *update.Name
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.ProfilePhoto != nil {
		set["profilePhoto"] = *update.ProfilePhoto
	}
	if update.SkillsOffered != nil {
		set["skillsOffered"] = update.SkillsOffered
	}
	if update.SkillsWanted != nil {
		set["skillsWanted"] = update.SkillsWanted
	}
	if update.Availability != nil {
		set["availability"] = update.Availability
	}
	if update.IsPublic != nil {
		set["isPublic"] = *update.IsPublic
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}

	if err := s.repo.UpdateProfile(ctx, userID, set); err != nil {
		return nil, err
	}

	logrus.WithField("userID", userID.Hex()).Info("Profile updated")
	return s.repo.GetUserByID(ctx, userID)
}

// SearchResult is the shape of the public browse response.
type SearchResult struct {
	Users      []models.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// Pagination describes the page window of a search result.
type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewPagination derives the page metadata from the window and total count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current: page,
		Total:   totalPages,
		HasNext: int64(page*limit) < total,
		HasPrev: page > 1,
	}
}

// SearchUsers runs the public browse query. Only public, active users are
// ever returned.
func (s *UserService) SearchUsers(ctx context.Context, skill, location string, page, limit int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, total, err := s.repo.SearchUsers(ctx, skill, location, page, limit)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Users:      users,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// GetAllUsers returns every account. Admin only at the call site.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// SetUserActive flips a user's isActive flag. Admin only at the call site.
func (s *UserService) SetUserActive(ctx context.Context, userID primitive.ObjectID, active bool) error {
	matched, err := s.repo.SetActive(ctx, userID, active)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: user", ErrNotFound)
	}

	logrus.WithFields(logrus.Fields{
		"userID":   userID.Hex(),
		"isActive": active,
	}).Info("User active status changed")
	return nil
}
