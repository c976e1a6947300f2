package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for user accounts.
type UserService struct {
	users UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// RegisterUser creates a new account after hashing the password. Duplicate
// username or email surfaces as apperr.ErrConflict from storage.
func (s *UserService) RegisterUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", apperr.ErrValidation)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hashedPwd),
		About:          req.About,
		Avatar:         req.Avatar,
	}
	if user.About == "" {
		user.About = models.DefaultAbout
	}
	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered")
	return created, nil
}

// AuthenticateUser verifies the username and password and returns the user
// when the credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		logrus.WithField("username", username).Warn("Login attempt for unknown user")
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("username", username).Warn("Invalid credentials")
		return nil, fmt.Errorf("invalid credentials")
	}

	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}
	return s.users.GetUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetUserByUsername(ctx, username)
}

// SearchUsers finds users matching the query and returns their public
// projections only.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]*models.PublicUser, error) {
	users, err := s.users.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.PublicUser, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return profiles, nil
}

// TouchLastActive records that the user just made an authenticated request.
func (s *UserService) TouchLastActive(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.users.UpdateUser(ctx, id, bson.M{"last_active": time.Now()})
	return err
}

// UpdateUser applies profile changes for the acting user, re-hashing the
// password when it changes.
func (s *UserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	updates := bson.M{}
	if req.Username != nil {
		if l := len(*req.Username); l < 2 || l > 30 {
			return nil, fmt.Errorf("%w: username must be 2-30 characters", apperr.ErrValidation)
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		if !emailRegex.MatchString(*req.Email) {
			return nil, fmt.Errorf("%w: invalid email format", apperr.ErrValidation)
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		if len(*req.Password) < 2 {
			return nil, fmt.Errorf("%w: password must be at least 2 characters", apperr.ErrValidation)
		}
		hashedPwd, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %v", err)
		}
		updates["hashed_password"] = string(hashedPwd)
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if len(updates) == 0 {
		return s.users.GetUserByID(ctx, userID)
	}

	updated, err := s.users.UpdateUser(ctx, userID, updates)
	if err != nil {
		return nil, err
	}

	logrus.WithField("userID", id).Info("User profile updated")
	return updated, nil
}
