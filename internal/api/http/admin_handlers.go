package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/emotrack/emotrack-go/internal/user"
)

func ListUsersHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := users.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func DeleteUserHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			http.Error(w, "bad user id", 400)
			return
		}
		if err := users.Delete(r.Context(), id); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}
