package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisio/revisio-backend/utils"
)

func TestCoursesWebSocketNotifiesListChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "secret-de-test")

	r := gin.New()
	r.GET("/ws/courses", HandleCoursesWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := utils.GenerateToken("user-1")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/courses?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// l'accusé de connexion arrive par la pompe d'écriture, comme les
	// diffusions
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "connected"}`, string(msg))

	BroadcastCourseListChanged()

	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "course_list_changed"}`, string(msg))
}

func TestCoursesWebSocketRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "secret-de-test")

	r := gin.New()
	r.GET("/ws/courses", HandleCoursesWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws/courses")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
