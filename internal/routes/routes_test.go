package routes

import (
	"testing"

	"github.com/crushconfessions/crushconfessions-backend/internal/handler"
	"github.com/crushconfessions/crushconfessions-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	Setup(
		router,
		handler.NewAuthHandler(nil),
		handler.NewProfileHandler(nil, nil),
		handler.NewConfessionHandler(nil, nil),
		handler.NewCommentHandler(nil, nil),
		handler.NewConversationHandler(nil),
		jwt.NewManager("test-secret", 15, 1440),
	)
	return router
}

func TestSetup_RegistersEndpoints(t *testing.T) {
	router := setupTestRouter()

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/auth/signup",
		"POST /api/auth/login",
		"GET /api/profile",
		"PUT /api/profile",
		"POST /api/confessions",
		"GET /api/confessions",
		"DELETE /api/confessions/:id",
		"POST /api/confessions/:id/like",
		"POST /api/confessions/:id/reveal",
		"GET /api/confessions/:id/comments",
		"POST /api/confessions/:id/comments",
		"POST /api/comments/:id/like",
		"POST /api/comments/:id/reveal",
		"POST /api/conversations",
		"GET /api/conversations",
		"GET /api/conversations/unread",
		"GET /api/conversations/:id",
		"DELETE /api/conversations/:id",
		"GET /api/conversations/:id/messages",
		"POST /api/conversations/:id/messages",
		"POST /api/conversations/:id/block",
		"GET /api/conversations/:id/typing",
		"POST /api/conversations/:id/typing",
	}
	for _, want := range expected {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestSetup_UnreadLivesUnderConversations(t *testing.T) {
	router := setupTestRouter()

	for _, route := range router.Routes() {
		assert.NotEqual(t, "/api/messages/unread", route.Path)
	}
}
