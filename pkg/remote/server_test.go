package remote

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/mediaquery"
)

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http")
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	return ws
}

func read(t *testing.T, ws *websocket.Conn) Message {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(time.Second))
	var msg Message
	if err := ws.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestServerConnectAndInitialScreens(t *testing.T) {
	srv := NewServer(WithDefaultViewport(mediaquery.Viewport{Width: 800, Height: 600}))
	server := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	defer server.Close()

	ws := dial(t, server.URL, nil)
	defer ws.Close()

	connect := read(t, ws)
	if connect.Type != MsgTypeConnect || connect.Session == "" {
		t.Fatalf("expected connect with session, got %+v", connect)
	}

	initial := read(t, ws)
	if initial.Type != MsgTypeScreens {
		t.Fatalf("expected screens, got %+v", initial)
	}
	want := breakpoint.Screens{breakpoint.SM: true, breakpoint.MD: true}
	if !initial.Screens.Equal(want) {
		t.Errorf("initial screens = %v, want %v", initial.Screens, want)
	}
	if initial.Current != breakpoint.MD {
		t.Errorf("current = %q, want md", initial.Current)
	}

	ids := srv.Sessions()
	if len(ids) != 1 || ids[0] != connect.Session {
		t.Errorf("Sessions() = %v, want [%s]", ids, connect.Session)
	}
	screens, ok := srv.Screens(connect.Session)
	if !ok || !screens.Equal(want) {
		t.Errorf("Screens() = %v, %v", screens, ok)
	}
}

func TestServerViewportUpdates(t *testing.T) {
	srv := NewServer(WithDefaultViewport(mediaquery.Viewport{Width: 800, Height: 600}))
	server := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	defer server.Close()

	ws := dial(t, server.URL, nil)
	defer ws.Close()
	read(t, ws)
	read(t, ws)

	if err := ws.WriteJSON(Message{Type: MsgTypeViewport, Width: 1000, Height: 700}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	msg := read(t, ws)
	if msg.Type != MsgTypeScreens {
		t.Fatalf("expected screens, got %+v", msg)
	}
	want := breakpoint.Screens{breakpoint.SM: true, breakpoint.MD: true, breakpoint.LG: true}
	if !msg.Screens.Equal(want) || msg.Current != breakpoint.LG {
		t.Errorf("after resize got %v current %q", msg.Screens, msg.Current)
	}
}

func TestServerRejectsBadMessages(t *testing.T) {
	srv := NewServer()
	server := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	defer server.Close()

	ws := dial(t, server.URL, nil)
	defer ws.Close()
	read(t, ws)
	read(t, ws)

	ws.WriteJSON(Message{Type: MsgTypeViewport, Width: 0, Height: 700})
	if msg := read(t, ws); msg.Type != MsgTypeError || msg.Error == "" {
		t.Errorf("expected error for empty viewport, got %+v", msg)
	}

	ws.WriteJSON(Message{Type: "reload"})
	if msg := read(t, ws); msg.Type != MsgTypeError || !strings.Contains(msg.Error, "reload") {
		t.Errorf("expected error for unknown type, got %+v", msg)
	}
}

func TestServerSessionCleanup(t *testing.T) {
	srv := NewServer()
	server := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	defer server.Close()

	ws := dial(t, server.URL, nil)
	connect := read(t, ws)
	read(t, ws)

	sess, ok := srv.Session(connect.Session)
	if !ok {
		t.Fatal("session not registered")
	}
	ws.Close()

	waitFor(t, func() bool { return len(srv.Sessions()) == 0 })
	if sess.Dispatcher.Active() {
		t.Error("dispatcher should be idle after disconnect")
	}
	if len(sess.Watcher.Queries()) != 0 {
		t.Errorf("queries left registered: %v", sess.Watcher.Queries())
	}
	if _, ok := srv.Screens(connect.Session); ok {
		t.Error("Screens should not find a closed session")
	}
}

func TestServerSessionsAreIndependent(t *testing.T) {
	srv := NewServer(WithDefaultViewport(mediaquery.Viewport{Width: 400, Height: 800}))
	server := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	defer server.Close()

	a := dial(t, server.URL, nil)
	defer a.Close()
	b := dial(t, server.URL, nil)
	defer b.Close()

	idA := read(t, a).Session
	read(t, a)
	idB := read(t, b).Session
	read(t, b)

	a.WriteJSON(Message{Type: MsgTypeViewport, Width: 1700, Height: 900})
	read(t, a)

	waitFor(t, func() bool {
		s, _ := srv.Screens(idA)
		return s[breakpoint.XXL]
	})
	screensB, _ := srv.Screens(idB)
	if cur, _ := screensB.Current(); cur != breakpoint.XS {
		t.Errorf("session B current = %q, want xs", cur)
	}
}

func TestServerOriginCheck(t *testing.T) {
	srv := NewServer(WithAllowedOrigins([]string{"https://app.example.com/"}))
	server := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	tests := []struct {
		origin string
		ok     bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:5173", true},
		{"https://APP.example.com", true},
		{"https://evil.example.com", false},
		{"https://localhost.evil.com", false},
	}

	for _, tt := range tests {
		header := http.Header{}
		if tt.origin != "" {
			header.Set("Origin", tt.origin)
		}
		ws, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
		if tt.ok {
			if err != nil {
				t.Errorf("origin %q: dial failed: %v", tt.origin, err)
				continue
			}
			ws.Close()
			continue
		}
		if err == nil {
			ws.Close()
			t.Errorf("origin %q: expected rejection", tt.origin)
			continue
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Errorf("origin %q: expected 403, got %v", tt.origin, resp)
		}
	}
}

func TestServerClose(t *testing.T) {
	srv := NewServer()
	server := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	defer server.Close()

	ws := dial(t, server.URL, nil)
	defer ws.Close()
	read(t, ws)
	read(t, ws)

	srv.Close()
	waitFor(t, func() bool { return len(srv.Sessions()) == 0 })
}
