package model

import "time"

// AdminType determines which creation endpoint provisions the account.
type AdminType string

const (
	AdminTypeCompany AdminType = "company"
	AdminTypeBranch  AdminType = "branch"
)

// Admin is an administrative account as listed by the booking API.
type Admin struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	ClientType   string        `json:"clientType"`
	State        string        `json:"state"`
	Role         string        `json:"role"`
	ProfilePhoto *string       `json:"fotoPerfil"`
	AdminProfile *AdminProfile `json:"AdminProfile"`
	PersonalData *PersonalData `json:"UserData"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// AdminForm is the account data record accumulated by the provisioning
// wizard. First and last name are the only hard-required fields; the rest
// ship with panel defaults.
type AdminForm struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	CountryID  int64  `json:"countryId"`
	Locale     string `json:"idioma"`
	Gender     string `json:"gender"`
	Birthdate  string `json:"birthdate"`
	CompanyID  int64  `json:"empresaId"`
	SedeID     *int64 `json:"sedeId,omitempty"`
	ClientType string `json:"clientType"`
	State      string `json:"state"`
	Role       string `json:"role,omitempty"`
}

// DefaultAdminForm returns the form pre-populated the way the panel seeds a
// fresh provisioning run.
func DefaultAdminForm() AdminForm {
	return AdminForm{
		CountryID:  1,
		Locale:     "es",
		Gender:     "Masculino",
		Birthdate:  "1990-01-15",
		ClientType: "people",
		State:      "enabled",
	}
}
