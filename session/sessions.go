package session

import (
	"flowdesk/bizerror"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// TokenCache keeps verified sessions keyed by raw token so repeated
// requests skip the signature check until the token expires.
var TokenCache = cache.New(DefaultTokenExpiration, 10*time.Minute)

const KeySecCtx = "SecCtx"

func ExtractSessionFromGinContext(ctx *gin.Context) *Session {
	value, found := ctx.Get(KeySecCtx)
	if !found {
		return &Session{Context: ctx.Request.Context()}
	}
	s0, ok := value.(*Session)
	if !ok || s0.Token == "" {
		return &Session{Context: ctx.Request.Context()}
	}
	s := s0.Clone()
	s.Context = ctx.Request.Context() // trace context
	return &s
}

func InjectSessionIntoGinContext(ctx *gin.Context, secCtx *Session) {
	if secCtx != nil && secCtx.Token != "" {
		ctx.Set(KeySecCtx, secCtx)
	}
}

// AuthFilter authenticates requests by the "Authorization: Bearer <token>"
// header and injects the resulting session into the gin context.
func AuthFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			panic(bizerror.ErrUnauthenticated)
		}
		token := strings.TrimPrefix(header, "Bearer ")

		if cached, found := TokenCache.Get(token); found {
			if secCtx, ok := cached.(*Session); ok {
				InjectSessionIntoGinContext(ctx, secCtx)
				ctx.Next()
				return
			}
		}

		claims, err := VerifyToken(token)
		if err != nil {
			panic(bizerror.ErrUnauthenticated)
		}
		secCtx := &Session{
			Token:       token,
			Identity:    Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role},
			SigningTime: claims.IssuedAt.Time,
		}
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			TokenCache.Set(token, secCtx, ttl)
		}
		InjectSessionIntoGinContext(ctx, secCtx)
		ctx.Next()
	}
}

// AdminFilter rejects sessions without the ADMIN role. It must be placed
// after AuthFilter. Entity routes do not use it: ownership scoping at the
// storage layer already isolates users from each other.
func AdminFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sec := ExtractSessionFromGinContext(ctx)
		if sec.Token == "" {
			panic(bizerror.ErrUnauthenticated)
		}
		if !sec.Perm(RoleAdmin) {
			panic(bizerror.ErrForbidden)
		}
		ctx.Next()
	}
}
