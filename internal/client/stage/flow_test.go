package stage

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/client/apiclient"
	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type fakeClock struct {
	expired bool
	stops   int
}

func (c *fakeClock) Expired() bool { return c.expired }
func (c *fakeClock) Stop()         { c.stops++ }

type fakeNavigator struct {
	mu     sync.Mutex
	routes []Route
}

func (n *fakeNavigator) Navigate(ctx context.Context, r Route) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, r)
	return nil
}

type captured struct {
	path        string
	contentType string
	body        []byte
}

type backend struct {
	srv   *httptest.Server
	calls atomic.Int32
	mu    sync.Mutex
	last  captured
}

func newBackend(t *testing.T, status int, reply string) *backend {
	t.Helper()
	b := &backend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.last = captured{path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: body}
		b.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(b.srv.Close)
	return b
}

type env struct {
	clock   *fakeClock
	nav     *fakeNavigator
	rec     *feedback.Recorder
	control *feedback.BusyControl
	backend *backend
	deps    Deps
}

func newEnv(t *testing.T, status int, reply string) *env {
	t.Helper()
	e := &env{
		clock:   &fakeClock{},
		nav:     &fakeNavigator{},
		rec:     feedback.NewRecorder(),
		control: feedback.NewBusyControl("Submit", "Transmitting..."),
		backend: newBackend(t, status, reply),
	}
	e.deps = Deps{
		API:          apiclient.New(e.backend.srv.URL, time.Second),
		Clock:        e.clock,
		Control:      e.control,
		Notifier:     e.rec,
		Marker:       e.rec,
		Navigator:    e.nav,
		FallbackTeam: "xyz",
	}
	return e
}

func TestLogicStageSendsExactBody(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{"message":"Round 4 submission received","urls":[]}`)

	out, err := NewFlow(Stage4(), e.deps).Submit(context.Background(), Form{
		Nodes: []domain.LogicNode{{Condition: "x>0", Action: "alert"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/round_4", e.backend.last.path)
	assert.Equal(t, "application/json", e.backend.last.contentType)
	assert.Equal(t,
		`{"Team_Name":"xyz","structured_submission":"[{\"condition\":\"x>0\",\"action\":\"alert\"}]","status_4":"Submitted","question":"","score_4":0}`,
		string(e.backend.last.body))

	assert.Equal(t, MsgSuccess, out.Message)
	assert.Equal(t, feedback.Toast{Kind: feedback.Success, Message: MsgSuccess}, e.rec.Last())
	assert.Equal(t, 1, e.clock.stops)
	assert.False(t, e.control.Busy())
	assert.Equal(t, []Route{{View: LeaderboardView, From: 4}}, e.nav.routes)
}

func TestLogicStageNeedsConditionAndAction(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{}`)

	_, err := NewFlow(Stage4(), e.deps).Submit(context.Background(), Form{
		Nodes: []domain.LogicNode{{Condition: "x>0"}, {Action: "alert"}},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Add at least one logic node (condition + action).", verr.Message)
	assert.Equal(t, int32(0), e.backend.calls.Load())
}

func TestExpiredStageNeverPosts(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{}`)
	e.clock.expired = true

	_, err := NewFlow(Stage4(), e.deps).Submit(context.Background(), Form{
		Nodes: []domain.LogicNode{{Condition: "x>0", Action: "alert"}},
	})
	assert.ErrorIs(t, err, ErrExpired)
	assert.Equal(t, int32(0), e.backend.calls.Load())
	assert.Equal(t, feedback.Toast{Kind: feedback.Error, Message: MsgExpired}, e.rec.Last())
}

func TestEmptyRequiredFieldNeverPosts(t *testing.T) {
	cases := []struct {
		def   Definition
		form  Form
		field string
		msg   string
	}{
		{Stage2(1 << 20), Form{Fields: map[string]string{"hosted_link": "https://acme.dev"}}, "git_hub_link", "URL is required."},
		{Stage3(1 << 20), Form{}, "figma_links", "Figma source link is required."},
		{Stage5(1 << 20), Form{Fields: map[string]string{"abstract": "a"}}, "codename", "Project Codename is required."},
		{Stage5(1 << 20), Form{Fields: map[string]string{"codename": "c"}}, "abstract", "Technical Abstract is required."},
		{Stage5(1 << 20), Form{Fields: map[string]string{"codename": "c", "abstract": "a"}}, "files", "Please upload at least one file (PDF, PPT, PPTX, KEY, or images)."},
		{Stage3(1 << 20), Form{Fields: map[string]string{"figma_links": "https://figma.com/f/1"}}, "files", "Please upload at least one interface schematic."},
	}
	for _, tc := range cases {
		e := newEnv(t, http.StatusOK, `{}`)
		_, err := NewFlow(tc.def, e.deps).Submit(context.Background(), tc.form)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), tc.msg)
		assert.Equal(t, tc.field, verr.Field)
		assert.Equal(t, tc.msg, verr.Message)
		assert.Equal(t, int32(0), e.backend.calls.Load())
		assert.False(t, e.rec.Fields[tc.field].Valid)
		assert.False(t, e.control.Busy())
	}
}

func TestOversizedFileIsNamed(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{}`)
	_, err := NewFlow(Stage2(8), e.deps).Submit(context.Background(), Form{
		Fields: map[string]string{"git_hub_link": "https://github.com/acme/app", "hosted_link": "https://acme.dev"},
		Files:  []Upload{UploadFromBytes("ok.png", []byte("1234")), UploadFromBytes("big.png", []byte("123456789"))},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, `"big.png"`)
	assert.Equal(t, int32(0), e.backend.calls.Load())
}

func TestMultipartStageSendsFields(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{"message":"ok","urls":["u1","u2"]}`)
	e.deps.Session = mapSession{"team_name": "acme"}

	out, err := NewFlow(Stage5(1<<20), e.deps).Submit(context.Background(), Form{
		Fields: map[string]string{"codename": "Jarvis", "abstract": " An assistant "},
		Files:  []Upload{UploadFromBytes("deck.pdf", []byte("%PDF")), UploadFromBytes("cover.png", []byte("png"))},
	})
	require.NoError(t, err)
	assert.Equal(t, "Submitted successfully. 2 file(s) uploaded.", out.Message)

	mediaType, params, err := mime.ParseMediaType(e.backend.last.contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	form, err := multipart.NewReader(strings.NewReader(string(e.backend.last.body)), params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"acme"}, form.Value["Team_Name"])
	assert.Equal(t, []string{"An assistant"}, form.Value["abstract"])
	assert.Equal(t, []string{"0"}, form.Value["score_5"])
	assert.NotContains(t, form.Value, "codename")
	require.Len(t, form.File["files"], 2)
	assert.Equal(t, "deck.pdf", form.File["files"][0].Filename)
}

type mapSession map[string]string

func (m mapSession) Get(key string) string { return m[key] }

func TestRejectedSurfacesDetail(t *testing.T) {
	e := newEnv(t, http.StatusNotFound, `{"detail":"Team not registered"}`)

	_, err := NewFlow(Stage4(), e.deps).Submit(context.Background(), Form{
		Nodes: []domain.LogicNode{{Condition: "a", Action: "b"}},
	})
	var rej *RejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusNotFound, rej.StatusCode)
	assert.Equal(t, "Team not registered", rej.Message)
	assert.Equal(t, feedback.Toast{Kind: feedback.Error, Message: "Team not registered"}, e.rec.Last())
	assert.False(t, e.control.Busy())
	assert.Empty(t, e.nav.routes)
	assert.Equal(t, 0, e.clock.stops)
}

func TestNetworkFailure(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{}`)
	e.backend.srv.Close()

	_, err := NewFlow(Stage4(), e.deps).Submit(context.Background(), Form{
		Nodes: []domain.LogicNode{{Condition: "a", Action: "b"}},
	})
	var nerr *NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.True(t, strings.HasPrefix(e.rec.Last().Message, "Network error: "))
	assert.False(t, e.control.Busy())
}

func TestBusyControlBlocksSecondSubmit(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{}`)
	require.True(t, e.control.TryAcquire())

	_, err := NewFlow(Stage4(), e.deps).Submit(context.Background(), Form{
		Nodes: []domain.LogicNode{{Condition: "a", Action: "b"}},
	})
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, int32(0), e.backend.calls.Load())
}

func TestRedirectHonoursContext(t *testing.T) {
	e := newEnv(t, http.StatusOK, `{}`)
	e.deps.RedirectDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	out, err := NewFlow(Stage4(), e.deps).Submit(ctx, Form{
		Nodes: []domain.LogicNode{{Condition: "a", Action: "b"}},
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, out)
	assert.Empty(t, e.nav.routes)
}

func TestForStage(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		def, err := ForStage(n, 1)
		require.NoError(t, err)
		assert.Equal(t, n, def.Stage)
	}
	_, err := ForStage(1, 1)
	assert.Error(t, err)
}

func TestUnreadableSuccessReplyIsLogged(t *testing.T) {
	e := newEnv(t, http.StatusOK, `<html>ok</html>`)
	core, logs := observer.New(zapcore.DebugLevel)
	e.deps.Logger = logging.NewFromZap(zap.New(core))

	out, err := NewFlow(Stage4(), e.deps).Submit(context.Background(), Form{
		Nodes: []domain.LogicNode{{Condition: "a", Action: "b"}},
	})
	require.NoError(t, err)
	assert.Empty(t, out.URLs)
	assert.Equal(t, MsgSuccess, e.rec.Last().Message)

	unreadable := logs.FilterMessage("Unreadable stage reply").All()
	require.Len(t, unreadable, 1)
	assert.Equal(t, int64(http.StatusOK), unreadable[0].ContextMap()["status"])
}
