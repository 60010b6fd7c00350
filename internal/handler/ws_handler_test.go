package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"shinesmile/internal/app/chat"
	"shinesmile/internal/pkg/auth/jwt"
)

func dialChat(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}

	conn, res, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if res != nil {
			status = res.StatusCode
		}
		t.Fatalf("dial (HTTP %d): %v", status, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendFrame(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(chat.Frame{Event: event, Data: raw}); err != nil {
		t.Fatalf("write %s: %v", event, err)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) chat.Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))

	var f chat.Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestWebSocketChatRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	srv := httptest.NewServer(e.handler)
	defer srv.Close()

	conn := dialChat(t, srv, "")
	sendFrame(t, conn, chat.EventJoinChat, chat.JoinPayload{Name: "Ann", Email: "ann@example.com"})

	welcome := readFrame(t, conn)
	if welcome.Event != chat.EventChatMessage {
		t.Fatalf("first frame = %s", welcome.Event)
	}
	var m chat.Message
	_ = json.Unmarshal(welcome.Data, &m)
	if m.Message != chat.WelcomeText {
		t.Fatalf("welcome = %+v", m)
	}

	if f := readFrame(t, conn); f.Event != chat.EventUserJoined {
		t.Fatalf("second frame = %s", f.Event)
	}

	sendFrame(t, conn, chat.EventSendMessage, chat.SendPayload{Message: "Do you take walk-ins?"})

	echo := readFrame(t, conn)
	if echo.Event != chat.EventChatMessage {
		t.Fatalf("echo frame = %s", echo.Event)
	}
	_ = json.Unmarshal(echo.Data, &m)
	if m.Sender != "Ann" || m.Message != "Do you take walk-ins?" || m.ID != "1" {
		t.Fatalf("echo = %+v", m)
	}
}

func TestWebSocketAdminOnlineUsers(t *testing.T) {
	e := newTestEnv(t)
	srv := httptest.NewServer(e.handler)
	defer srv.Close()

	visitor := dialChat(t, srv, "")
	sendFrame(t, visitor, chat.EventJoinChat, chat.JoinPayload{Name: "Ann"})
	readFrame(t, visitor)
	readFrame(t, visitor)

	staff := dialChat(t, srv, tokenFor(t, 99, jwt.RoleAdmin))
	sendFrame(t, staff, chat.EventJoinChat, chat.JoinPayload{Name: "Front Desk", IsAdmin: true})
	if f := readFrame(t, staff); f.Event != chat.EventChatMessage {
		t.Fatalf("staff welcome = %s", f.Event)
	}

	sendFrame(t, staff, chat.EventAdminAction, chat.AdminActionPayload{Type: chat.ActionGetOnlineUsers})

	f := readFrame(t, staff)
	if f.Event != chat.EventOnlineUsers {
		t.Fatalf("staff frame = %s", f.Event)
	}
	var online []chat.Participant
	if err := json.Unmarshal(f.Data, &online); err != nil {
		t.Fatal(err)
	}
	if len(online) != 1 || online[0].Name != "Ann" || online[0].IsAdmin {
		t.Fatalf("online = %+v", online)
	}
}

func TestWebSocketRejectsInvalidToken(t *testing.T) {
	e := newTestEnv(t)
	srv := httptest.NewServer(e.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=garbage"
	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial with invalid token succeeded")
	}
	if res == nil || res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("response = %v", res)
	}
}
