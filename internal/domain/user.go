package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Hash     string `db:"password_hash"`
	Role     string `db:"role"` // USER | ADMIN
}

// IsAdmin reports whether the user holds the elevated role that may see
// products across all owners.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
