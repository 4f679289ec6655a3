package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"orders-api/models"
	"orders-api/repositories"
	"orders-api/utils"
)

type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenManager

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(userRepo repositories.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login checks the credentials and issues a token. An unknown e-mail and a
// wrong password both yield ErrInvalidCredentials; the reason is only logged.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.burnVerify(req.Password)
			log.Printf("login failed email=%q reason=user_not_found", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil {
		log.Printf("login failed email=%q reason=unverifiable_hash err=%v", req.Email, err)
		return nil, ErrInvalidCredentials
	}
	if !valid {
		log.Printf("login failed email=%q reason=password_mismatch", req.Email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Message: "Success login!",
		Token:   token,
	}, nil
}

// Authenticate validates the raw bearer token and resolves its subject in
// the store. Only a live, correctly signed token whose user still exists
// produces a principal.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.Principal, error) {
	claims, err := s.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("auth rejected sub=%s reason=subject_not_found", claims.UserID())
			return nil, ErrIdentityNotFound
		}
		log.Printf("auth rejected sub=%s reason=store_error err=%v", claims.UserID(), err)
		return nil, ErrAuthBackend
	}

	return &models.Principal{User: user, Claims: claims}, nil
}

// burnVerify runs one hash comparison so that unknown e-mails take roughly
// as long as wrong passwords.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		hash, err := utils.HashPassword("orders-api-dummy-password")
		if err != nil {
			log.Printf("dummy hash failed: %v", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = utils.VerifyPassword(s.dummyHash, password)
	}
}
