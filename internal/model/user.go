package model

// UserRole 由托管认证服务写入令牌的角色
type UserRole string

const (
	Student UserRole = "student"
	Staff   UserRole = "staff"
	Admin   UserRole = "admin"
)
