package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Name        string    `gorm:"size:100" json:"name"`
	Email       string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"size:20;uniqueIndex;not null" json:"phoneNumber"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Role        UserRole  `gorm:"size:20;default:'user'" json:"role"`
	LastLogin   time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Principal 已认证的调用方，每个业务操作都显式传入
type Principal struct {
	UserID string
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DevPrincipal 非生产环境下未携带令牌的请求使用的身份
var DevPrincipal = Principal{UserID: "dev-user-id", Role: RoleUser}
