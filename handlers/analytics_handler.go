package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"arcanaAPI/internal/types/streak"
	"arcanaAPI/middleware"
	"arcanaAPI/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Heartbeat is pinged by the app while it is in the foreground.
func (h *AnalyticsHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var deviceInfo map[string]string
	if err := json.NewDecoder(r.Body).Decode(&deviceInfo); err != nil {
		deviceInfo = map[string]string{}
	}

	if err := h.analyticsService.UpdatePresence(ctx, clerkID, deviceInfo); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update presence")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AnalyticsHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.analyticsService.SetUserInactive(ctx, clerkID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update presence")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AnalyticsHandler) GetActiveUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.analyticsService.GetActiveUsers(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count active users")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"active_users": count})
}

func (h *AnalyticsHandler) GetDAU(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date := streak.Day(time.Now())
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	count, err := h.analyticsService.GetDAU(ctx, date)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count daily active users")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"date": date.Format("2006-01-02"),
		"dau":  count,
	})
}

func (h *AnalyticsHandler) GetStreakDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dist, err := h.analyticsService.GetStreakDistribution(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load streak distribution")
		return
	}

	respondWithJSON(w, http.StatusOK, dist)
}
