package auth

type AdminUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

type UserContext struct {
	UserID string
	Email  string
	Role   string
}

type Credential struct {
	User         AdminUser
	PasswordHash string
}
