package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"arcanaAPI/middleware"
	"arcanaAPI/services"
)

type ReadingHandler struct {
	readingService *services.ReadingService
}

func NewReadingHandler(readingService *services.ReadingService) *ReadingHandler {
	return &ReadingHandler{
		readingService: readingService,
	}
}

// GetDailyReading serves the user's card of the day, drawing it on the
// first request of the UTC day.
func (h *ReadingHandler) GetDailyReading(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reading, err := h.readingService.GetDailyReading(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to draw daily reading")
		return
	}

	respondWithJSON(w, http.StatusOK, reading)
}
