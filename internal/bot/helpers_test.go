package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/reelbot/internal/detail"
	"github.com/lepinkainen/reelbot/internal/pager"
	"github.com/lepinkainen/reelbot/internal/session"
	"github.com/lepinkainen/reelbot/internal/tmdb"
)

type sentMessage struct {
	Method    string
	ChatID    int64
	MessageID int
	Text      string
	Keyboard  pager.Keyboard
	PhotoPath string
	PhotoSeen bool
}

type answer struct {
	ID   string
	Text string
}

type fakeMessenger struct {
	mu       sync.Mutex
	messages []sentMessage
	answers  []answer
	photoErr error
}

func (m *fakeMessenger) record(msg sentMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *fakeMessenger) SendText(_ context.Context, chatID int64, text string) error {
	m.record(sentMessage{Method: "text", ChatID: chatID, Text: text})
	return nil
}

func (m *fakeMessenger) SendKeyboard(_ context.Context, chatID int64, text string, kb pager.Keyboard) error {
	m.record(sentMessage{Method: "keyboard", ChatID: chatID, Text: text, Keyboard: kb})
	return nil
}

func (m *fakeMessenger) EditKeyboard(_ context.Context, chatID int64, messageID int, text string, kb pager.Keyboard) error {
	m.record(sentMessage{Method: "edit", ChatID: chatID, MessageID: messageID, Text: text, Keyboard: kb})
	return nil
}

func (m *fakeMessenger) SendPhoto(_ context.Context, chatID int64, photoPath, caption string) error {
	_, statErr := os.Stat(photoPath)
	m.record(sentMessage{Method: "photo", ChatID: chatID, Text: caption, PhotoPath: photoPath, PhotoSeen: statErr == nil})
	return m.photoErr
}

func (m *fakeMessenger) AnswerCallback(_ context.Context, callbackID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, answer{ID: callbackID, Text: text})
	return nil
}

func (m *fakeMessenger) sent(method string) []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMessage
	for _, msg := range m.messages {
		if msg.Method == method {
			out = append(out, msg)
		}
	}
	return out
}

// fakeTMDB serves a small catalog over HTTP and counts requests per path.
type fakeTMDB struct {
	t          *testing.T
	movies     int
	shows      int
	imageFails bool

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeTMDB) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeTMDB) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[r.URL.Path]++
	f.mu.Unlock()

	switch r.URL.Path {
	case "/search/movie":
		f.writeResults(w, "title", f.movies, 100)
	case "/search/tv":
		f.writeResults(w, "name", f.shows, 500)
	case "/movie/27205":
		f.writeJSON(w, map[string]any{
			"id":           27205,
			"title":        "Inception",
			"overview":     "Cobb steals secrets from dreams.",
			"poster_path":  "/inception.jpg",
			"release_date": "2010-07-15",
			"vote_average": 8.369,
			"genres":       []map[string]any{{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}},
		})
	case "/genre/movie/list":
		f.writeJSON(w, map[string]any{
			"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}},
		})
	case "/img/w780/inception.jpg":
		if f.imageFails {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var buf bytes.Buffer
		require.NoError(f.t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 15))))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeTMDB) writeResults(w http.ResponseWriter, titleKey string, n, idBase int) {
	results := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		results = append(results, map[string]any{
			"id":         idBase + i,
			titleKey:     fmt.Sprintf("%s %d", titleKey, i),
			"overview":   "overview",
			"vote_count": 1,
		})
	}
	f.writeJSON(w, map[string]any{"page": 1, "results": results, "total_results": n})
}

func (f *fakeTMDB) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(f.t, json.NewEncoder(w).Encode(v))
}

type harness struct {
	dispatcher *Dispatcher
	messenger  *fakeMessenger
	sessions   *session.MemoryStore
	tmdb       *fakeTMDB
	tempDir    string
}

func newHarness(t *testing.T, catalog *fakeTMDB) *harness {
	t.Helper()
	catalog.t = t
	server := httptest.NewServer(catalog)
	t.Cleanup(server.Close)

	client := tmdb.NewClient("key",
		tmdb.WithBaseURL(server.URL),
		tmdb.WithImageBaseURL(server.URL+"/img"),
		tmdb.WithHTTPClient(server.Client()),
	)

	h := &harness{
		messenger: &fakeMessenger{},
		sessions:  session.NewMemoryStore(),
		tmdb:      catalog,
		tempDir:   t.TempDir(),
	}
	h.dispatcher = New(h.messenger, h.sessions, pager.New(client), detail.New(client, detail.WithTempDir(h.tempDir)))
	return h
}

func (h *harness) tempFiles(t *testing.T) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(h.tempDir)
	require.NoError(t, err)
	return entries
}
