package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"backoffice/internal/auth"

	"github.com/gorilla/websocket"
)

func wsURL(server string, query string) string {
	return strings.Replace(server, "http://", "ws://", 1) + "/ws/cashboxes" + query
}

func TestWSCashboxesRejectsMissingToken(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server.URL, ""), nil)
	if err == nil {
		conn.Close()
		t.Fatal("expected handshake to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestWSCashboxesRejectsInvalidToken(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	token, err := auth.IssueToken("another-secret", "clerk-1", time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	conn, resp, dialErr := websocket.DefaultDialer.Dial(wsURL(server.URL, "?token="+token), nil)
	if dialErr == nil {
		conn.Close()
		t.Fatal("expected handshake to fail with a bad signature")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestWSCashboxesAcceptsQueryToken(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	token, err := auth.IssueToken(testSecret, "clerk-1", time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	conn, _, dialErr := websocket.DefaultDialer.Dial(wsURL(server.URL, "?token="+token+"&currency=USD"), nil)
	if dialErr != nil {
		t.Fatalf("expected handshake to succeed: %v", dialErr)
	}
	conn.Close()
}

func TestWSCashboxesAcceptsBearerHeader(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	token, err := auth.IssueToken(testSecret, "clerk-1", time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, _, dialErr := websocket.DefaultDialer.Dial(wsURL(server.URL, ""), header)
	if dialErr != nil {
		t.Fatalf("expected handshake to succeed: %v", dialErr)
	}
	conn.Close()
}
