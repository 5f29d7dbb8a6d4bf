package ctypes

// UserRole 用户角色
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleEditor     UserRole = "editor"
	RoleAuthor     UserRole = "author"
	RoleSubscriber UserRole = "subscriber"
)
