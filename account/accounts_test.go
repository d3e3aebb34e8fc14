package account_test

import (
	"context"
	"testing"
	"time"

	"flowdesk/account"
	"flowdesk/bizerror"
	"flowdesk/persistence"
	"flowdesk/session"
	"flowdesk/testinfra"

	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("flowdesk")
	Expect(db.DS.GormDB(context.Background()).AutoMigrate(&account.User{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
	*testDatabase = db

	session.TokenSecret = []byte("test-secret")
}
func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

var registrationDemo = &account.UserRegistration{Email: "ann@test.local", Password: "Password123", Name: "Ann"}

func TestRegisterUser(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should persist an active USER and return a valid token", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := &session.Session{Context: context.Background()}
		result, err := account.RegisterUser(registrationDemo, sec)
		Expect(err).To(BeNil())
		Expect(result.User.ID).ToNot(BeEmpty())
		Expect(result.User.Email).To(Equal(registrationDemo.Email))
		Expect(result.User.Name).To(Equal(registrationDemo.Name))
		Expect(result.User.Role).To(Equal(session.RoleUser))
		Expect(result.User.IsActive).To(BeTrue())

		claims, err := session.VerifyToken(result.Token)
		Expect(err).To(BeNil())
		Expect(claims.UserID).To(Equal(result.User.ID))
		Expect(claims.Email).To(Equal(registrationDemo.Email))

		var users []account.User
		Expect(testDatabase.DS.GormDB(context.Background()).Model(&account.User{}).Scan(&users).Error).To(BeNil())
		Expect(len(users)).To(Equal(1))
		Expect(users[0].Secret).ToNot(Equal(registrationDemo.Password))
		Expect(account.CheckSecret(registrationDemo.Password, users[0].Secret)).To(BeTrue())
	})

	t.Run("should reject duplicate email", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := &session.Session{Context: context.Background()}
		_, err := account.RegisterUser(registrationDemo, sec)
		Expect(err).To(BeNil())

		result, err := account.RegisterUser(&account.UserRegistration{
			Email: registrationDemo.Email, Password: "Another123", Name: "Another Ann"}, sec)
		Expect(result).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrEmailExisted))
	})
}

func TestLoginUser(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should return the user and a token on valid credentials", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := &session.Session{Context: context.Background()}
		registered, err := account.RegisterUser(registrationDemo, sec)
		Expect(err).To(BeNil())

		result, err := account.LoginUser(&account.LoginRequest{
			Email: registrationDemo.Email, Password: registrationDemo.Password}, sec)
		Expect(err).To(BeNil())
		Expect(result.User.ID).To(Equal(registered.User.ID))

		claims, err := session.VerifyToken(result.Token)
		Expect(err).To(BeNil())
		Expect(claims.UserID).To(Equal(registered.User.ID))
		Expect(claims.Role).To(Equal(session.RoleUser))
	})

	t.Run("should reject unknown email and wrong password alike", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := &session.Session{Context: context.Background()}
		_, err := account.RegisterUser(registrationDemo, sec)
		Expect(err).To(BeNil())

		result, err := account.LoginUser(&account.LoginRequest{Email: "nobody@test.local", Password: "Password123"}, sec)
		Expect(result).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrInvalidCredentials))

		result, err = account.LoginUser(&account.LoginRequest{Email: registrationDemo.Email, Password: "wrong-pass"}, sec)
		Expect(result).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrInvalidCredentials))
	})

	t.Run("should reject deactivated accounts", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := &session.Session{Context: context.Background()}
		registered, err := account.RegisterUser(registrationDemo, sec)
		Expect(err).To(BeNil())

		db := testDatabase.DS.GormDB(context.Background())
		Expect(db.Model(&account.User{}).Where("id = ?", registered.User.ID).
			Update("is_active", false).Error).To(BeNil())

		result, err := account.LoginUser(&account.LoginRequest{
			Email: registrationDemo.Email, Password: registrationDemo.Password}, sec)
		Expect(result).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrAccountInactive))
	})
}

func TestDetailProfile(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should return the caller's own record without the secret", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := &session.Session{Context: context.Background()}
		registered, err := account.RegisterUser(registrationDemo, sec)
		Expect(err).To(BeNil())

		info, err := account.DetailProfile(testinfra.BuildSecCtx(registered.User.ID, session.RoleUser))
		Expect(err).To(BeNil())
		Expect(info.ID).To(Equal(registered.User.ID))
		Expect(info.Email).To(Equal(registrationDemo.Email))
		Expect(info.Name).To(Equal(registrationDemo.Name))
		Expect(info.IsActive).To(BeTrue())
	})

	t.Run("should report record not found for a vanished identity", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		info, err := account.DetailProfile(testinfra.BuildSecCtx("e1b8e7ab-0000-0000-0000-000000000001", session.RoleUser))
		Expect(info).To(BeNil())
		Expect(err).To(Equal(gorm.ErrRecordNotFound))
	})
}

func TestSecretHashing(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should verify only the original password", func(t *testing.T) {
		hashed, err := account.HashSecret("Password123")
		Expect(err).To(BeNil())
		Expect(hashed).ToNot(Equal("Password123"))
		Expect(account.CheckSecret("Password123", hashed)).To(BeTrue())
		Expect(account.CheckSecret("password123", hashed)).To(BeFalse())
		Expect(account.CheckSecret("", hashed)).To(BeFalse())
	})
}

func TestTokenExpiryOnLogin(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should stamp the configured expiration on issued tokens", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)
		session.TokenExpiration = time.Hour

		sec := &session.Session{Context: context.Background()}
		result, err := account.RegisterUser(registrationDemo, sec)
		Expect(err).To(BeNil())

		claims, err := session.VerifyToken(result.Token)
		Expect(err).To(BeNil())
		Expect(claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)).To(Equal(time.Hour))

		session.TokenExpiration = session.DefaultTokenExpiration
	})
}
