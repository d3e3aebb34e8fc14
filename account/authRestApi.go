package account

import (
	"net/http"

	"flowdesk/bizerror"
	"flowdesk/infra/ratelimit"
	"flowdesk/misc"
	"flowdesk/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterAuthHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/api/auth", middleWares...)

	handler := &authHandler{}

	authLimit := ratelimit.NewAuthRateLimit()
	g.POST("/register", authLimit, handler.handleRegister)
	g.POST("/login", authLimit, handler.handleLogin)
	g.GET("/profile", session.AuthFilter(), handler.handleProfile)
}

type authHandler struct {
}

func (h *authHandler) handleRegister(c *gin.Context) {
	registration := UserRegistration{}
	if err := c.ShouldBindBodyWith(&registration, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	result, err := RegisterUserFunc(&registration, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusCreated, misc.OkWithMessage("User registered successfully", result))
}

func (h *authHandler) handleLogin(c *gin.Context) {
	login := LoginRequest{}
	if err := c.ShouldBindBodyWith(&login, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	result, err := LoginUserFunc(&login, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.OkWithMessage("Login successful", result))
}

func (h *authHandler) handleProfile(c *gin.Context) {
	info, err := DetailProfileFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.Ok(info))
}
