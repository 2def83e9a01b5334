package model

import "time"

// Operator roles as reported by the booking API.
const (
	RoleSuperAdmin   = "SUPER_ADMIN"
	RoleCompanyAdmin = "COMPANY_ADMIN"
	RoleBranchAdmin  = "BRANCH_ADMIN"
	RoleClient       = "CLIENT"
)

// User is the logged-in operator profile as returned by the booking API.
type User struct {
	ID            int64         `json:"id"`
	Email         string        `json:"email"`
	Role          string        `json:"role"`
	ClientType    string        `json:"clientType"`
	State         string        `json:"state"`
	AcceptTerms   bool          `json:"acceptTerms"`
	AcceptPolicy  bool          `json:"acceptPolitics"`
	ProfilePhoto  *string       `json:"fotoPerfil"`
	AdminProfile  *AdminProfile `json:"AdminProfile,omitempty"`
	PersonalData  *PersonalData `json:"UserData,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// AdminProfile scopes an operator to a company and optionally a branch.
type AdminProfile struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	PhotoURL  *string `json:"photoUrl"`
	CompanyID int64   `json:"empresaId"`
	SedeID    *int64  `json:"sedeId"`
}

// PersonalData carries the personal record attached to a user account.
type PersonalData struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CountryID int64  `json:"countryId"`
	Locale    string `json:"idioma"`
	Gender    string `json:"gender"`
	Birthdate string `json:"birthdate"`
}

// SedeID returns the operator's branch id, if any.
func (u *User) SedeID() (int64, bool) {
	if u.AdminProfile == nil || u.AdminProfile.SedeID == nil {
		return 0, false
	}
	return *u.AdminProfile.SedeID, true
}

// CompanyID returns the operator's company id, if any.
func (u *User) CompanyID() (int64, bool) {
	if u.AdminProfile == nil {
		return 0, false
	}
	return u.AdminProfile.CompanyID, true
}

// DisplayName prefers the personal record name over the email.
func (u *User) DisplayName() string {
	if u.PersonalData != nil && u.PersonalData.Name != "" {
		return u.PersonalData.Name
	}
	return u.Email
}
