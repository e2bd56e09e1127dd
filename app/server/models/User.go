package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	Username     string    `gorm:"column:username;primaryKey" json:"username"` // 用户名，全局唯一，创建后不可修改
	PasswordHash string    `gorm:"column:password_hash" json:"-"`              // 密码，使用 argon2id 储存
	Role         Role      `gorm:"column:role;default:user" json:"role"`       // 角色：管理员可以写入书目，普通用户只能浏览
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
