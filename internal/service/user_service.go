package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db       *sqlx.DB
	store    *store.UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewUserService(db *sqlx.DB, store *store.UserStore, secret string, tokenTTL time.Duration) *UserService {
	return &UserService{db: db, store: store, secret: []byte(secret), tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Username string
	Password string
	Role     league.Role
	TeamID   *uuid.UUID
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*league.User, error) {
	if input.Role != league.RoleAdmin && input.Role != league.RoleTeam {
		return nil, fmt.Errorf("%w: role %q", league.ErrValidation, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &league.User{
		ID:             uuid.New(),
		Username:       input.Username,
		HashedPassword: string(hash),
		Role:           input.Role,
		TeamID:         input.TeamID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed bearer token. Bad
// username and bad password produce the same error so callers cannot probe
// for accounts.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *league.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, league.ErrNotFound) {
		return "", nil, fmt.Errorf("invalid username or password: %w", league.ErrValidation)
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid username or password: %w", league.ErrValidation)
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// EnsureAdminUser seeds the default admin account if none exists yet.
func (s *UserService) EnsureAdminUser(ctx context.Context, username, password string) (*league.User, bool, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, league.ErrNotFound) {
		return nil, false, err
	}

	admin, err := s.Register(ctx, RegisterInput{Username: username, Password: password, Role: league.RoleAdmin})
	if err != nil {
		return nil, false, err
	}
	return admin, true, nil
}
