package session_test

import (
	"testing"
	"time"

	"flowdesk/bizerror"
	"flowdesk/session"

	. "github.com/onsi/gomega"
)

func TestSignToken(t *testing.T) {
	RegisterTestingT(t)

	session.TokenSecret = []byte("test-signing-secret")
	session.TokenExpiration = session.DefaultTokenExpiration

	t.Run("verify should return the identity the token was signed with", func(t *testing.T) {
		identity := session.Identity{ID: "3e8cc33b-9a05-4a5a-b906-8e131ba46c64", Email: "ann@test.local", Role: "USER"}
		token, err := session.SignToken(identity, time.Now())
		Expect(err).To(BeNil())
		Expect(token).ToNot(BeEmpty())

		claims, err := session.VerifyToken(token)
		Expect(err).To(BeNil())
		Expect(claims.UserID).To(Equal(identity.ID))
		Expect(claims.Email).To(Equal(identity.Email))
		Expect(claims.Role).To(Equal(identity.Role))
	})

	t.Run("verify should fail for a tampered token", func(t *testing.T) {
		identity := session.Identity{ID: "3e8cc33b-9a05-4a5a-b906-8e131ba46c64", Email: "ann@test.local", Role: "USER"}
		token, err := session.SignToken(identity, time.Now())
		Expect(err).To(BeNil())

		tampered := token[:len(token)-2] + "xx"
		claims, err := session.VerifyToken(tampered)
		Expect(claims).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrUnauthenticated))
	})

	t.Run("verify should fail for a token signed with another secret", func(t *testing.T) {
		session.TokenSecret = []byte("another-secret")
		token, err := session.SignToken(session.Identity{ID: "u1", Email: "a@test.local", Role: "USER"}, time.Now())
		Expect(err).To(BeNil())

		session.TokenSecret = []byte("test-signing-secret")
		claims, err := session.VerifyToken(token)
		Expect(claims).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrUnauthenticated))
	})

	t.Run("verify should fail for an expired token", func(t *testing.T) {
		signingTime := time.Now().Add(-session.TokenExpiration - time.Minute)
		token, err := session.SignToken(session.Identity{ID: "u1", Email: "a@test.local", Role: "USER"}, signingTime)
		Expect(err).To(BeNil())

		claims, err := session.VerifyToken(token)
		Expect(claims).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrUnauthenticated))
	})
}
