package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery           = "SELECT * FROM users WHERE id = ?"
	getUserByUsernameQuery = "SELECT * FROM users WHERE username = ?"
	createUserQuery        = `
		INSERT INTO users (id, username, hashed_password, role, team_id, created_at) VALUES
		(:id, :username, :hashed_password, :role, :team_id, :created_at)
	`
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUser(ctx context.Context, id string) (*league.User, error) {
	var user league.User
	err := s.db.GetContext(ctx, &user, getUserQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, league.ErrNotFound)
	}
	return &user, err
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*league.User, error) {
	var user league.User
	err := s.db.GetContext(ctx, &user, getUserByUsernameQuery, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, league.ErrNotFound)
	}
	return &user, err
}

func (s *UserStore) CreateUser(ctx context.Context, user *league.User) error {
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("username %s: %w", user.Username, league.ErrConflict)
	}
	return err
}

func (s *UserStore) GetUsers(ctx context.Context) ([]league.User, error) {
	var users []league.User
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY created_at ASC")
	return users, err
}
