package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"career_path/internal/app/mail"
	"career_path/internal/common"
	"career_path/internal/common/security"
	"career_path/internal/domain/model"
	"career_path/internal/domain/repository"
)

// Notifier queues a welcome message for out-of-band delivery.
type Notifier interface {
	Enqueue(ctx context.Context, msg mail.Message) error
}

type AuthService struct {
	userRepo repository.UserRepository
	notifier Notifier
	sessions *SessionService
}

func NewAuthService(userRepo repository.UserRepository, notifier Notifier, sessions *SessionService) *AuthService {
	return &AuthService{userRepo: userRepo, notifier: notifier, sessions: sessions}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates an account. Emails are case-folded before the
// uniqueness check, so a@x.com and A@X.com are the same account. The
// welcome email is queued after the record is persisted; a notifier
// failure is logged and deliberately does not affect the result.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict for a duplicate email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.notifier.Enqueue(ctx, mail.Message{To: user.Email, Name: user.Name}); err != nil {
		log.Printf("WARN: Failed to queue welcome email for %s: %v", user.Email, err)
	}

	user.HashedPassword = "" // Clear password before returning
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// Resolve reconstitutes the session identity from the users table. The
// auth middleware calls this on every authenticated request; a missing
// record returns common.ErrNotFound and the session ends as anonymous.
func (s *AuthService) Resolve(ctx context.Context, id string) (*model.Identity, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Identity{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}
