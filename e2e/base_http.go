package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"post-notify/domain/post"
	"post-notify/httpapi"
	"post-notify/notifier"
	"post-notify/repositories"
	"post-notify/runtime"
	"post-notify/runtime/workers"
	"post-notify/services"
)

// Page ids wired into the in-process stack: one page with a healthy
// webhook receiver, one whose receiver always refuses.
const (
	healthyPage  = int64(511)
	brokenPage   = int64(666)
	orphanedPage = int64(777) // no endpoint configured at all
)

// BaseHTTPSuite boots the full pipeline in-process: badger repository,
// dispatcher, supervised delivery workers, the real webhook notifier and
// the HTTP API, plus stub receivers standing in for the pages' endpoints.
type BaseHTTPSuite struct {
	suite.Suite
	Config Config

	api      *httptest.Server
	receiver *httptest.Server
	broken   *httptest.Server
	received chan post.NotificationPayload
	cancel   context.CancelFunc
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

func (s *BaseHTTPSuite) SetupTest() {
	log := slog.Default()

	opts := badger.DefaultOptions(s.T().TempDir()).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })

	s.received = make(chan post.NotificationPayload, 16)
	s.receiver = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload post.NotificationPayload
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&payload))
		s.received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	s.T().Cleanup(s.receiver.Close)

	s.broken = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	s.T().Cleanup(s.broken.Close)

	repo := repositories.NewPostRepository(db, log)
	dispatcher := runtime.NewDispatcher(log, repo, 16)
	pages := notifier.NewStaticPageDirectory(map[int64]string{
		healthyPage: s.receiver.URL,
		brokenPage:  s.broken.URL,
	})
	webhooks := notifier.NewWebhookNotifier(log, 2*time.Second)

	cfg := runtime.DeliveryConfig{
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		Backoff:     runtime.Backoff{BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond},
	}

	sup := workers.NewSupervisor(log)
	for i := 0; i < 2; i++ {
		sup.Add(runtime.NewDeliveryWorker(log, dispatcher.Queue(), repo, pages, webhooks, cfg))
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go sup.Run(ctx)

	s.api = httptest.NewServer(httpapi.NewMux(log, services.NewPostService(log, repo, dispatcher)))
	s.T().Cleanup(s.api.Close)
}

func (s *BaseHTTPSuite) TearDownTest() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Step prints a colorized header so scenario progress is readable in logs.
func (s *BaseHTTPSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// PostJSON issues a request against the in-process API and decodes the
// response body into a generic map.
func (s *BaseHTTPSuite) PostJSON(path, body string) (int, map[string]any) {
	resp, err := http.Post(s.api.URL+path, "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	return s.decode(resp)
}

func (s *BaseHTTPSuite) GetJSON(path string) (int, map[string]any) {
	resp, err := http.Get(s.api.URL + path)
	s.Require().NoError(err)
	return s.decode(resp)
}

func (s *BaseHTTPSuite) decode(resp *http.Response) (int, map[string]any) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if s.Config.DebugJSON {
		s.T().Logf("HTTP %d: %s", resp.StatusCode, raw)
	}
	var body map[string]any
	s.Require().NoError(json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}
