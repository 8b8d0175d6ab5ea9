package problems

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary/secondarytest"
	"gitlab.com/stark-bootcamp.net/internal/core/services/problem"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

func newRouter() *mux.Router {
	logger := logging.NewNopLogger()
	r := mux.NewRouter()
	admin := func(next http.Handler) http.Handler { return next }
	NewHandler(problem.NewProblemService(secondarytest.NewProblems(), "con", logger), logger).RegisterRoutes(r, admin)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestCreateAndFetchProblem(t *testing.T) {
	r := newRouter()
	body := `{"problem_id":1,"title":"Sum","description":"add two numbers",
		"test_cases":[{"input":"1 2","output":"3"},{"input":"5 5","output":"10","hidden":true}],
		"score":20,"pre_code":{"python":"a, b = map(int, input().split())"},"post_code":{}}`

	rec := do(r, http.MethodPost, "/problem", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(r, http.MethodGet, "/problem/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Sum", p.Title)
	assert.Equal(t, "con", p.ContestID)
	assert.Len(t, p.TestCases, 2)
	assert.Equal(t, 20, p.Score)
}

func TestCreateProblemValidation(t *testing.T) {
	rec := do(newRouter(), http.MethodPost, "/problem", `{"problem_id":2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUnknownProblem(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, do(newRouter(), http.MethodGet, "/problem/9", "").Code)
	assert.Equal(t, http.StatusNotFound, do(newRouter(), http.MethodGet, "/problem/abc", "").Code)
}
