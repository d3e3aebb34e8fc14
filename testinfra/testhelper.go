package testinfra

import (
	"context"
	"net/http"
	"net/http/httptest"

	"flowdesk/session"

	"github.com/gin-gonic/gin"
)

// BuildSecCtx builds an authenticated session for tests.
func BuildSecCtx(uid, role string) *session.Session {
	return &session.Session{
		Token:    "test-token-" + uid,
		Identity: session.Identity{ID: uid, Email: uid + "@test.local", Role: role},
		Context:  context.Background(),
	}
}

// ExecuteRequest runs one request through the router and returns the
// response status, body and recorder.
func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code, w.Body.String(), w
}
