package domain

// Role represents a back-office user role
type Role string

const (
	RoleAdmin Role = "ADMIN"
)

// TokenPair represents an issued access and refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
