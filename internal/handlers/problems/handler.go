package problems

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/problem"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/handlers"
	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
)

type Handler struct {
	problemService problem.IProblemService
	logger         primary.Logger
}

func NewHandler(problemService problem.IProblemService, logger primary.Logger) *Handler {
	return &Handler{
		problemService: problemService,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, admin handlers.Guard) {
	router.Handle("/problem", handlers.Guarded(h.CreateProblem, admin)).Methods("POST")
	router.HandleFunc("/problem/{id:[0-9]+}", h.GetProblem).Methods("GET")
}

func (h *Handler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	var p domain.Problem
	if !handlers.DecodeJSON(w, r, &p) {
		return
	}
	if err := h.problemService.CreateProblem(r.Context(), &p); err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteJSON(w, http.StatusCreated, p)
}

// GetProblem returns the full problem. The editor grades locally, so hidden
// cases are included.
func (h *Handler) GetProblem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.WriteError(w, response.Detail(http.StatusBadRequest, "Invalid problem id"))
		return
	}
	p, err := h.problemService.GetProblem(r.Context(), id)
	if err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteSuccess(w, p)
}
