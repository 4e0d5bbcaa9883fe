package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// dialTestConnection stands up a real websocket pair; the server side drains
// frames until the peer goes away.
func dialTestConnection(t *testing.T) *Connection {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	conn := NewConnection("alice", ws)
	t.Cleanup(func() { conn.Close(websocket.CloseNormalClosure, "test done") })
	return conn
}

func TestSendAfterCloseReturnsError(t *testing.T) {
	conn := dialTestConnection(t)
	conn.Start()
	conn.Close(websocket.CloseGoingAway, "bye")

	// well past the buffer capacity; every attempt must fail cleanly
	for i := 0; i < 300; i++ {
		require.Error(t, conn.Send([]byte("late")))
	}
}

func TestSendRacingCloseDoesNotPanic(t *testing.T) {
	conn := dialTestConnection(t)
	conn.Start()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = conn.Send([]byte("payload"))
			}
		}()
	}
	conn.Close(websocket.CloseNormalClosure, "bye")
	wg.Wait()
}

func TestCloseIsIdempotent(t *testing.T) {
	conn := dialTestConnection(t)
	conn.Start()
	conn.Close(websocket.CloseNormalClosure, "first")
	conn.Close(websocket.CloseNormalClosure, "second")
}
