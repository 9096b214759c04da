package task

// User is the locally cached shape of a backend user. Role and the staff
// flags come straight from the backend account record.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	Staff     bool   `json:"isStaff,omitempty"`
	Superuser bool   `json:"isSuperuser,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == "admin" || u.Staff || u.Superuser
}
