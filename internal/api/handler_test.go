package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/brownbots/ablemate/internal/api"
	"github.com/brownbots/ablemate/internal/model"
	"github.com/brownbots/ablemate/internal/service"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input service.RegisterInput) (*model.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) RegisterUser(ctx context.Context, input service.RegisterInput) (*model.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) LoginUser(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) GetUserProfile(context.Context, int64) (*model.User, error) {
	return nil, service.ErrUserNotFound
}

func newAuthTestApp(svc service.AuthService) *fiber.App {
	handler := api.NewAuthHandler(svc)

	app := fiber.New()
	auth := app.Group("/api/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	return app
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, service.RegisterInput) (*model.User, error) {
			return nil, service.ErrPasswordMismatch
		},
	}
	app := newAuthTestApp(svc)

	body := strings.NewReader(`{
		"full_name": "Ada Lovelace",
		"email": "ada@example.com",
		"password": "correct horse",
		"confirm_password": "something else",
		"dob": "1990-01-01",
		"gender": "female",
		"role": "dependent"
	}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, service.RegisterInput) (*model.User, error) {
			return nil, service.ErrEmailTaken
		},
	}
	app := newAuthTestApp(svc)

	body := strings.NewReader(`{
		"full_name": "Ada Lovelace",
		"email": "ada@example.com",
		"password": "correct horse",
		"confirm_password": "correct horse",
		"dob": "1990-01-01",
		"gender": "female",
		"role": "dependent"
	}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", service.ErrInvalidCredentials
		},
	}
	app := newAuthTestApp(svc)

	body := strings.NewReader(`{"email":"ada@example.com","password":"nope"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
