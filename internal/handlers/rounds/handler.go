package rounds

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/round"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/handlers"
	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
)

const (
	filesField = "files"
	// multipart parts above this size spill to temporary files
	memoryLimit = 8 << 20
)

type Handler struct {
	roundService   round.IRoundService
	maxUploadBytes int64
	logger         primary.Logger
}

func NewHandler(roundService round.IRoundService, maxUploadBytes int64, logger primary.Logger) *Handler {
	return &Handler{
		roundService:   roundService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, throttle, admin handlers.Guard) {
	for _, rd := range []domain.Round{domain.Round2, domain.Round3, domain.Round5} {
		router.Handle(rd.Endpoint(), handlers.Guarded(h.submitMultipart(rd), throttle)).Methods("POST")
	}
	router.Handle(domain.Round4.Endpoint(), handlers.Guarded(h.SubmitLogic, throttle)).Methods("POST")
	router.Handle("/grade", handlers.Guarded(h.Grade, admin)).Methods("POST")
}

func (h *Handler) submitMultipart(rd domain.Round) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.maxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		}
		if err := r.ParseMultipartForm(memoryLimit); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.WriteError(w, response.Detail(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Upload exceeds %s limit", humanize.IBytes(uint64(h.maxUploadBytes)))))
				return
			}
			response.WriteError(w, response.Detail(http.StatusBadRequest, "Expected multipart form data"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		fields := make(map[string]string, len(r.MultipartForm.Value))
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}

		uploads, closeAll, err := openUploads(r.MultipartForm.File[filesField])
		defer closeAll()
		if err != nil {
			h.logger.Error("Failed to open uploaded file", "round", int(rd), "error", err)
			response.WriteError(w, response.Detail(http.StatusBadRequest, "Could not read uploaded file"))
			return
		}

		h.submit(w, r, round.Input{
			Round:    rd,
			TeamName: r.FormValue("Team_Name"),
			Fields:   fields,
			Files:    uploads,
		})
	}
}

// SubmitLogic accepts the logic stage, which carries no files.
func (h *Handler) SubmitLogic(w http.ResponseWriter, r *http.Request) {
	var req domain.Round4Submission
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	h.submit(w, r, round.Input{
		Round:    domain.Round4,
		TeamName: req.TeamName,
		Fields: map[string]string{
			"structured_submission": req.StructuredSubmission,
			"status_4":              req.Status,
			"question":              req.Question,
		},
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, in round.Input) {
	resp, err := h.roundService.Submit(r.Context(), in)
	if err != nil {
		h.logger.Warn("Round submission rejected", "round", int(in.Round), "team", in.TeamName, "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteSuccess(w, resp)
}

func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	total, err := h.roundService.Grade(r.Context(), domain.Round(req.Round), strings.TrimSpace(req.TeamName), req.Score)
	if err != nil {
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteSuccess(w, GradeResponse{TeamName: req.TeamName, TeamScore: total})
}

func openUploads(headers []*multipart.FileHeader) ([]round.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]round.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		files = append(files, f)
		uploads = append(uploads, round.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return uploads, closeAll, nil
}
