package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"skilllink/internal/domain/auth"
	"skilllink/internal/pkg/errs"
)

type tokenTable map[string]int64

func (tt tokenTable) GetSession(_ context.Context, token string) (*auth.Session, error) {
	id, ok := tt[token]
	if !ok {
		return nil, errs.Authorization("invalid session")
	}
	return &auth.Session{AccessToken: token, PersonID: id}, nil
}

func liveServer(t *testing.T, f *fixture, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	sessions := tokenTable{"client": f.client, "worker": f.worker, "outsider": f.outsider}
	RegisterWSRoutes(r.Group("/api/v1"), NewWSHandler(hub, sessions, f.chat, nil))
	return httptest.NewServer(r)
}

func wsURL(srv *httptest.Server, requestID int64, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/api/v1/requests/" + strconv.FormatInt(requestID, 10) + "/ws?token=" + token
}

func TestLiveChannelDeliversMessages(t *testing.T) {
	f := newFixture(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub()
	f.chat.pub = hub
	srv := liveServer(t, f, hub)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, f.request, "client"), nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Eventually(t, func() bool { return hub.Listeners(f.request) == 1 }, time.Second, 10*time.Millisecond)

	_, err = f.chat.SendMessage(context.Background(), f.request, f.worker, "llego en 5")
	require.NoError(t, err)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventNewMessage, got.Type)
	require.NotNil(t, got.Message)
	assert.Equal(t, "llego en 5", got.Message.Content)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventPong, got.Type)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Listeners(f.request) == 0 }, time.Second, 10*time.Millisecond)

	srv.Close()
	hub.Close()
}

func TestLiveChannelRejectsStrangers(t *testing.T) {
	f := newFixture(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub()
	srv := liveServer(t, f, hub)
	defer srv.Close()

	cases := map[string]int{
		"outsider": http.StatusForbidden,
		"bogus":    http.StatusUnauthorized,
	}
	for token, status := range cases {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, f.request, token), nil)
		require.Error(t, err, token)
		require.NotNil(t, resp, token)
		assert.Equal(t, status, resp.StatusCode, token)
		_ = resp.Body.Close()
	}
	assert.Zero(t, hub.Listeners(f.request))
}

func TestClosedHubTurnsAwayLateConnections(t *testing.T) {
	f := newFixture(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub()
	hub.Close()
	srv := liveServer(t, f, hub)
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, f.request, "client"), nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Zero(t, hub.Listeners(f.request))

	// Close stays safe to call again.
	hub.Close()
}
