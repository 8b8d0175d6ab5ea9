package teams

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/registration"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/handlers"
	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
)

type RegisterResponse struct {
	Message  string `json:"message"`
	TeamName string `json:"Team_Name"`
}

type Handler struct {
	registration registration.IRegistrationService
	logger       primary.Logger
}

func NewHandler(registration registration.IRegistrationService, logger primary.Logger) *Handler {
	return &Handler{
		registration: registration,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/register", h.Register).Methods("POST")
	router.HandleFunc("/teams/{name}", h.GetTeam).Methods("GET")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var team domain.Team
	if !handlers.DecodeJSON(w, r, &team) {
		return
	}

	if err := h.registration.Register(r.Context(), &team); err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}

	response.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message:  "Team registered successfully",
		TeamName: team.Name,
	})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.registration.GetTeam(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteSuccess(w, team)
}
