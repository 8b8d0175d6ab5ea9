package contests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary/secondarytest"
	"gitlab.com/stark-bootcamp.net/internal/core/services/contest"
)

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func allowAll(next http.Handler) http.Handler { return next }

func newRouter(admin func(http.Handler) http.Handler) *mux.Router {
	logger := logging.NewNopLogger()
	r := mux.NewRouter()
	NewHandler(contest.NewContestService(secondarytest.NewContests(), logger), logger).RegisterRoutes(r, admin)
	return r
}

func do(r http.Handler, method, target, body string) int {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec.Code
}

const contestBody = `{"contest_id":"con","description":"bootcamp","start_time":"2025-01-01T09:00:00Z","end_time":"2025-01-01T17:00:00Z"}`

func TestCreateContestRequiresAdmin(t *testing.T) {
	r := newRouter(denyAll)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/contest", contestBody))
}

func TestCreateAndGetContest(t *testing.T) {
	r := newRouter(allowAll)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/contest", contestBody))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/contest/con", ""))
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/contest/other", ""))
}
