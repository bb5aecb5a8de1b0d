package model

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Principal struct {
	UserID int64
	Email  string
	Role   string
}
