package leaderboard

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
)

type Handler struct {
	leaderboardService leaderboard.ILeaderboardService
	logger             primary.Logger
}

func NewHandler(leaderboardService leaderboard.ILeaderboardService, logger primary.Logger) *Handler {
	return &Handler{
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/leaderboard", h.List).Methods("GET")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list leaderboard", "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteSuccess(w, entries)
}
