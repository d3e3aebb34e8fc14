package account

import "time"

type User struct {
	ID     string `json:"id" gorm:"primary_key;type:varchar(36)"`
	Email  string `json:"email" gorm:"type:varchar(255) NOT NULL;unique_index"`
	Secret string `json:"-" gorm:"type:varchar(100) NOT NULL"`

	Name     string `json:"name" gorm:"type:varchar(100) NOT NULL"`
	Role     string `json:"role" gorm:"type:varchar(10) NOT NULL"`
	IsActive bool   `json:"isActive"`

	CreateTime time.Time `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime time.Time `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type UserInfo struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"isActive"`
	CreateTime time.Time `json:"createTime"`
}

type UserRegistration struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,gte=6"`
	Name     string `json:"name" binding:"required,lte=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is the register/login response body: the public part of the
// user record plus a freshly signed bearer token.
type AuthResult struct {
	User  UserInfo `json:"user"`
	Token string   `json:"token"`
}

func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, IsActive: u.IsActive, CreateTime: u.CreateTime}
}
