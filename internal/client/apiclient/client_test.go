package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/round_4", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"a":1}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"urls":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	c.SetHeader("Authorization", "Bearer t")
	info, err := c.PostJSON(context.Background(), "/round_4", []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.True(t, info.OK())
	assert.Equal(t, http.StatusCreated, info.StatusCode)
	assert.Equal(t, `{"urls":[]}`, string(info.Body))
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Problem not found"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"Team_Name":"acme","team_score":12}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	var out []map[string]interface{}
	require.NoError(t, c.GetJSON(context.Background(), "/leaderboard", &out))
	assert.Equal(t, "acme", out[0]["Team_Name"])

	err := c.GetJSON(context.Background(), "/missing", &out)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, string(statusErr.Body), "Problem not found")
}

func TestTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Get(context.Background(), "/leaderboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
