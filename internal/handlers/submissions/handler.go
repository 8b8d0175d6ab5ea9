package submissions

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/submission"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/handlers"
	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
)

type Handler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewHandler(submissionService submission.ISubmissionService, logger primary.Logger) *Handler {
	return &Handler{
		submissionService: submissionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, throttle handlers.Guard) {
	router.Handle("/submit", handlers.Guarded(h.Submit, throttle)).Methods("POST")
}

// Submit records the editor's verdict for one problem.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub domain.CodeSubmission
	if !handlers.DecodeJSON(w, r, &sub) {
		return
	}

	saved, err := h.submissionService.Submit(r.Context(), &sub)
	if err != nil {
		h.logger.Warn("Code submission rejected", "team", sub.TeamName, "problemId", sub.ProblemID, "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteJSON(w, http.StatusCreated, saved)
}
