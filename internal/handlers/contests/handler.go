package contests

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/contest"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/handlers"
	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
)

type Handler struct {
	contestService contest.IContestService
	logger         primary.Logger
}

func NewHandler(contestService contest.IContestService, logger primary.Logger) *Handler {
	return &Handler{
		contestService: contestService,
		logger:         logger,
	}
}

// RegisterRoutes mounts the contest routes; creation sits behind admin.
func (h *Handler) RegisterRoutes(router *mux.Router, admin handlers.Guard) {
	router.Handle("/contest", handlers.Guarded(h.CreateContest, admin)).Methods("POST")
	router.HandleFunc("/contest/{id}", h.GetContest).Methods("GET")
}

func (h *Handler) CreateContest(w http.ResponseWriter, r *http.Request) {
	var c domain.Contest
	if !handlers.DecodeJSON(w, r, &c) {
		return
	}
	if err := h.contestService.CreateContest(r.Context(), &c); err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	c, err := h.contestService.GetContest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteSuccess(w, c)
}
