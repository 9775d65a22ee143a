// Package http holds the REST handlers for the EmoTrack API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	auth "github.com/emotrack/emotrack-go/internal/auth/middleware"
	"github.com/emotrack/emotrack-go/internal/user"
)

func SignupHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
			Age      int    `json:"age"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" || req.Age <= 0 {
			http.Error(w, "all fields required", 400)
			return
		}
		u, err := users.Create(r.Context(), user.User{
			Username: req.Username,
			Email:    req.Email,
			Name:     req.Name,
			Age:      req.Age,
		}, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrUsernameTaken) {
				http.Error(w, err.Error(), 400)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(u)
	}
}

func LoginHandler(users user.Store, authSvc *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		u, err := users.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrInvalidCredentials) {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		tok, err := authSvc.IssueJWT(u.Username, u.ID, u.Role)
		if err != nil {
			http.Error(w, "issue token", 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": tok,
			"user":  u,
		})
	}
}
