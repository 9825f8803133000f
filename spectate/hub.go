package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/milk9111/mazechase/event"
	"github.com/milk9111/mazechase/game"
	"github.com/sirupsen/logrus"
)

const (
	URISnapshot = "/snapshot"
	URIPursuer  = "/snapshot/pursuers/:name"
	URIWatch    = "/watch"

	sendBuffer   = 16
	writeTimeout = time.Second
)

// Message is one frame of the spectator feed. Exactly one field is set.
type Message struct {
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Event    *event.Event   `json:"event,omitempty"`
	State    *game.State    `json:"state,omitempty"`
}

type watcher struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub serves the latest snapshot over HTTP and streams snapshots, events and
// state changes to websocket watchers. It implements game.Listener.
type Hub struct {
	Upgrader *websocket.Upgrader

	router   *way.Router
	mu       sync.Mutex
	latest   *game.Snapshot
	watchers map[*watcher]struct{}

	log *logrus.Entry
}

func NewHub(log *logrus.Entry) *Hub {
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = logrus.NewEntry(quiet)
	}
	h := &Hub{
		Upgrader: &websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		watchers: make(map[*watcher]struct{}),
		log:      log.WithField("component", "spectate"),
	}
	h.routes()
	return h
}

func (h *Hub) routes() {
	h.router = way.NewRouter()
	h.router.HandleFunc("GET", URISnapshot, h.HandleSnapshot())
	h.router.HandleFunc("GET", URIPursuer, h.HandlePursuer())
	h.router.HandleFunc("GET", URIWatch, h.HandleWatch())
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Publish stores s as the latest snapshot and sends it to every watcher.
func (h *Hub) Publish(s game.Snapshot) {
	h.mu.Lock()
	h.latest = &s
	h.mu.Unlock()
	h.broadcast(Message{Snapshot: &s})
}

func (h *Hub) StateEntered(s game.State) { h.broadcast(Message{State: &s}) }
func (h *Hub) StateExited(game.State)    {}
func (h *Hub) Event(evt event.Event)     { h.broadcast(Message{Event: &evt}) }

func (h *Hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

func (h *Hub) broadcast(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.log.WithError(err).Error("encoding spectator message failed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers {
		select {
		case w.send <- data:
		default:
			h.log.Warn("watcher too slow, dropping message")
		}
	}
}

func (h *Hub) snapshot() (game.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return game.Snapshot{}, false
	}
	return *h.latest, true
}

func (h *Hub) HandleSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.snapshot()
		if !ok {
			http.Error(w, "no game running", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, s)
	}
}

func (h *Hub) HandlePursuer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.snapshot()
		if !ok {
			http.Error(w, "no game running", http.StatusServiceUnavailable)
			return
		}
		name := way.Param(r.Context(), "name")
		for _, p := range s.Pursuers {
			if p.Name == name {
				writeJSON(w, p)
				return
			}
		}
		http.NotFound(w, r)
	}
}

func (h *Hub) HandleWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		wt := &watcher{conn: conn, send: make(chan []byte, sendBuffer)}
		if s, ok := h.snapshot(); ok {
			if data, err := json.Marshal(Message{Snapshot: &s}); err == nil {
				wt.send <- data
			}
		}
		h.mu.Lock()
		h.watchers[wt] = struct{}{}
		h.mu.Unlock()
		h.log.WithField("remote", r.RemoteAddr).Info("spectator joined")

		done := make(chan struct{})
		go h.writeLoop(wt, done)
		h.readLoop(wt)

		h.mu.Lock()
		delete(h.watchers, wt)
		h.mu.Unlock()
		close(done)
		conn.Close()
		h.log.WithField("remote", r.RemoteAddr).Info("spectator left")
	}
}

// readLoop discards incoming frames until the watcher goes away.
func (h *Hub) readLoop(wt *watcher) {
	for {
		if _, _, err := wt.conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(wt *watcher, done <-chan struct{}) {
	for {
		select {
		case data := <-wt.send:
			wt.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := wt.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.log.WithError(err).Debug("writing to spectator failed")
				wt.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

// Close disconnects every watcher.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers {
		w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"),
			time.Now().Add(writeTimeout))
		w.conn.Close()
	}
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h}
	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	h.log.WithField("addr", addr).Info("spectator feed listening")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		h.Close()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
