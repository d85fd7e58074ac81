package domain

// UserRole is the application-wide role of a user.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User represents a user of the application in the domain.
// Users are read-only reference data from this engine's perspective.
type User struct {
	UserID         string   `json:"uid"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Role           UserRole `json:"role"`
	CanPrintChecks bool     `json:"canPrintChecks"`
	// CompanyIDs restricts which companies' checks a non-admin can see.
	CompanyIDs []string `json:"companyIds"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanSeeCompany reports whether the user may see checks for a company.
// Admins see everything; everyone else is limited to their membership list.
func (u User) CanSeeCompany(companyID string) bool {
	if u.IsAdmin() {
		return true
	}
	for _, id := range u.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// DisplayName picks the best available label for the user.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unknown"
}
