// Package user manages accounts: registration, credential checks and the
// admin listing/deletion surface.
package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User never carries password material.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Role     string `json:"role"`
}

type Store interface {
	Create(ctx context.Context, u User, password string) (User, error)
	Authenticate(ctx context.Context, username, password string) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error
}

const bcryptCost = 12

// SQLStore keeps users in the shared database with bcrypt password
// hashes.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, u User, password string) (User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, u.Username).Scan(&exists)
	switch {
	case err == nil:
		return User{}, ErrUsernameTaken
	case !errors.Is(err, sql.ErrNoRows):
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, err
	}
	if u.Role == "" {
		u.Role = "user"
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO users (username,email,password_hash,name,age,role,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		u.Username, u.Email, string(hash), u.Name, u.Age, u.Role, time.Now().Unix(),
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *SQLStore) Authenticate(ctx context.Context, username, password string) (User, error) {
	var u User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id,username,email,password_hash,name,age,role FROM users WHERE username=$1`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &hash, &u.Name, &u.Age, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *SQLStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,username,email,name,age,role FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Age, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
