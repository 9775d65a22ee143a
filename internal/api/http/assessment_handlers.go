package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/emotrack/emotrack-go/internal/assessment"
	"github.com/emotrack/emotrack-go/internal/rbac"
)

// IsPathUserOwner reports whether the token's uid matches the {userID}
// path parameter. Plugged into rbac.RequireOwnerOr on per-user routes.
func IsPathUserOwner(r *http.Request) bool {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		return false
	}
	return id == rbac.UserIDFromContext(r.Context())
}

func SaveAssessmentHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID           int64            `json:"userId"`
			TotalStressScore int              `json:"totalStressScore"`
			StressLevel      assessment.Level `json:"stressLevel"` // advisory, recomputed
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		uid := rbac.UserIDFromContext(r.Context())
		if req.UserID != uid && rbac.RoleFromContext(r.Context()) != "admin" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		a, err := svc.Save(r.Context(), req.UserID, req.TotalStressScore)
		if err != nil {
			if errors.Is(err, assessment.ErrScoreOutOfRange) {
				http.Error(w, err.Error(), 400)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

func ReportsHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			http.Error(w, "bad user id", 400)
			return
		}
		list, err := svc.Reports(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(list)
	}
}

func AnalyticsHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			http.Error(w, "bad user id", 400)
			return
		}
		sum, ok, err := svc.Analytics(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "No assessments found"})
			return
		}
		_ = json.NewEncoder(w).Encode(sum)
	}
}
