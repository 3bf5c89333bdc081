package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"arcanaAPI/internal/types/user"
	"arcanaAPI/middleware"
	"arcanaAPI/services"
	"arcanaAPI/utils"
)

type UserHandler struct {
	userService         *services.UserService
	streakService       *services.StreakService
	notificationService *services.NotificationService
	readingService      *services.ReadingService
}

func NewUserHandler(userService *services.UserService, streakService *services.StreakService, notificationService *services.NotificationService, readingService *services.ReadingService) *UserHandler {
	return &UserHandler{
		userService:         userService,
		streakService:       streakService,
		notificationService: notificationService,
		readingService:      readingService,
	}
}

// GetProfile serves the authenticated home/profile payload. It records
// today's visit first and waits for the result, so the streak shown is
// the one persisted for this request. A failed streak update never
// fails the page: it renders with streak 0.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	dailyStreak, err := h.streakService.UpdateDailyStreak(ctx, clerkID)
	if err != nil {
		log.Printf("Streak update unavailable for %s: %v", clerkID, err)
		dailyStreak = 0
	} else if utils.IsStreakMilestone(dailyStreak) {
		go h.announceMilestone(clerkID, dailyStreak)
	}

	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	// The badge shows what was actually committed this request, not a
	// possibly stale stored value.
	u.DailyStreak = dailyStreak

	respondWithJSON(w, http.StatusOK, &user.ProfileResponse{
		User:        u,
		DailyStreak: dailyStreak,
	})
}

// GetHome serves the aggregated home screen: profile, post-visit streak,
// today's card, and unread notification count. Like GetProfile it records
// the visit first and degrades to streak 0 if that fails; the secondary
// widgets degrade independently so the screen always renders.
func (h *UserHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	resp := &user.HomeResponse{}

	dailyStreak, err := h.streakService.UpdateDailyStreak(ctx, clerkID)
	if err != nil {
		log.Printf("Streak update unavailable for %s: %v", clerkID, err)
		resp.StreakUnavailable = true
	} else if utils.IsStreakMilestone(dailyStreak) {
		go h.announceMilestone(clerkID, dailyStreak)
	}
	resp.DailyStreak = dailyStreak

	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	u.DailyStreak = dailyStreak
	resp.User = u

	if dailyReading, err := h.readingService.GetDailyReading(ctx, clerkID); err != nil {
		log.Printf("Daily reading unavailable for %s: %v", clerkID, err)
	} else {
		resp.DailyReading = dailyReading
	}

	if count, err := h.notificationService.GetUnreadCount(ctx, clerkID); err != nil {
		log.Printf("Unread count unavailable for %s: %v", clerkID, err)
	} else {
		resp.UnreadCount = count
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) announceMilestone(clerkID string, streakCount int) {
	userID, err := h.userService.UserIDByClerkID(context.Background(), clerkID)
	if err != nil {
		log.Printf("Milestone notification skipped for %s: %v", clerkID, err)
		return
	}
	utils.StreakMilestoneReached(h.notificationService, userID, streakCount)
}

// GetStreak returns the stored streak without recording a visit, for
// screens that poll the badge.
func (h *UserHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	s, err := h.streakService.GetStreak(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load streak")
		return
	}

	respondWithJSON(w, http.StatusOK, s)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.userService.UpdateProfileByClerkID(ctx, clerkID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, u)
}

func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.userService.DeleteUserByClerkID(ctx, clerkID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
