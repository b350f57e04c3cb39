package model

// 用户身份与资料由外部身份服务托管，本服务只消费令牌中的用户ID与角色。

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)
