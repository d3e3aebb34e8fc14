package account

import (
	"time"

	"flowdesk/bizerror"
	"flowdesk/persistence"
	"flowdesk/session"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

var (
	RegisterUserFunc  = RegisterUser
	LoginUserFunc     = LoginUser
	DetailProfileFunc = DetailProfile
)

func HashSecret(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckSecret(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

func RegisterUser(reg *UserRegistration, sec *session.Session) (*AuthResult, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	existing := User{}
	err := db.Where(&User{Email: reg.Email}).First(&existing).Error
	if err == nil {
		return nil, bizerror.ErrEmailExisted
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	secret, err := HashSecret(reg.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().Round(time.Millisecond)
	user := User{
		ID: uuid.New().String(), Email: reg.Email, Secret: secret, Name: reg.Name,
		Role: session.RoleUser, IsActive: true, CreateTime: now, UpdateTime: now,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := session.SignToken(session.Identity{ID: user.ID, Email: user.Email, Role: user.Role}, now)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Info(), Token: token}, nil
}

func LoginUser(login *LoginRequest, sec *session.Session) (*AuthResult, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	user := User{}
	if err := db.Where(&User{Email: login.Email}).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, bizerror.ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckSecret(login.Password, user.Secret) {
		return nil, bizerror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, bizerror.ErrAccountInactive
	}

	token, err := session.SignToken(session.Identity{ID: user.ID, Email: user.Email, Role: user.Role},
		time.Now().Round(time.Millisecond))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Info(), Token: token}, nil
}

func DetailProfile(sec *session.Session) (*UserInfo, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	user := User{}
	if err := db.Where(&User{ID: sec.Identity.ID}).First(&user).Error; err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}
