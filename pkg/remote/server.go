// Package remote keeps server-side breakpoint state in sync with browser
// viewports over a websocket, so server-rendered components can pick
// layouts for the client's real screen size.
package remote

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/mediaquery"
	"github.com/withgalaxy/responsive/pkg/responsive"
	"github.com/withgalaxy/responsive/pkg/watcher"
)

type Server struct {
	upgrader websocket.Upgrader
	defaults mediaquery.Viewport
	allowed  map[string]bool
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Session is one connected client with its own watcher and dispatcher.
type Session struct {
	ID         string
	Watcher    *watcher.Viewport
	Dispatcher *responsive.Dispatcher

	conn    *websocket.Conn
	writeMu sync.Mutex
}

type Option func(*Server)

// WithDefaultViewport sets the size assumed until a client reports its own.
func WithDefaultViewport(vp mediaquery.Viewport) Option {
	return func(s *Server) {
		s.defaults = vp
	}
}

func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.allowed = allowedOrigins(origins)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		defaults: mediaquery.Viewport{Width: 1024, Height: 768},
		allowed:  map[string]bool{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	vp := watcher.NewViewport(s.defaults, watcher.WithLogger(s.logger))
	sess := &Session{
		ID:         uuid.NewString(),
		Watcher:    vp,
		Dispatcher: responsive.New(vp, responsive.WithLogger(s.logger)),
		conn:       conn,
	}
	log := s.logger.With("session", sess.ID)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	defer func() {
		sess.Dispatcher.Close()
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		conn.Close()
		log.Debug("session closed")
	}()

	if err := sess.send(Message{Type: MsgTypeConnect, Session: sess.ID}); err != nil {
		log.Warn("send connect failed", "error", err)
		return
	}
	log.Debug("session opened")

	sess.Dispatcher.Subscribe(func(screens breakpoint.Screens) {
		if err := sess.send(screensMessage(screens)); err != nil {
			log.Warn("send screens failed", "error", err)
		}
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read failed", "error", err)
			}
			return
		}

		switch msg.Type {
		case MsgTypeViewport:
			if msg.Width <= 0 || msg.Height <= 0 {
				sess.sendError(fmt.Sprintf("invalid viewport %dx%d", msg.Width, msg.Height))
				continue
			}
			vp.Resize(mediaquery.Viewport{Width: msg.Width, Height: msg.Height})
		default:
			sess.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

func (sess *Session) send(msg Message) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	return sess.conn.WriteJSON(msg)
}

func (sess *Session) sendError(text string) {
	_ = sess.send(Message{Type: MsgTypeError, Error: text})
}

func (s *Server) Session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Sessions returns the ids of connected clients, sorted.
func (s *Server) Sessions() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Screens returns the breakpoint state last computed for a session.
func (s *Server) Screens(id string) (breakpoint.Screens, bool) {
	sess, ok := s.Session(id)
	if !ok {
		return nil, false
	}
	return sess.Dispatcher.Screens(), true
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.sessions))
	for _, sess := range s.sessions {
		conns = append(conns, sess.conn)
	}
	s.mu.RUnlock()

	for _, c := range conns {
		c.Close()
	}
}
