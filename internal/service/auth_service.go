package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/brownbots/ablemate/internal/jwt"
	"github.com/brownbots/ablemate/internal/model"
	"github.com/brownbots/ablemate/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("password and confirm_password do not match")
	ErrInvalidRole        = errors.New("role must be volunteer or dependent")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type RegisterInput struct {
	FullName         string
	Email            string
	Password         string
	ConfirmPassword  string
	DOB              string
	Gender           string
	Role             string
	DisabilityStatus *string
	Experience       *string
}

type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*model.User, error)
	LoginUser(ctx context.Context, email, password string) (accessToken string, err error)
	GetUserProfile(ctx context.Context, userID int64) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) RegisterUser(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	role := strings.ToLower(input.Role)
	if role != model.RoleVolunteer && role != model.RoleDependent {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		DOB:          input.DOB,
		Gender:       input.Gender,
		Role:         role,
	}

	// disability_status only applies to dependents, experience only to
	// volunteers; the inapplicable field is dropped rather than stored.
	switch role {
	case model.RoleDependent:
		user.DisabilityStatus = input.DisabilityStatus
	case model.RoleVolunteer:
		user.Experience = input.Experience
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = newID

	return user, nil
}

func (s *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	// Unknown email and wrong password must be indistinguishable.
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	accessToken, err := jwt.GenerateToken(user)
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

func (s *authService) GetUserProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
