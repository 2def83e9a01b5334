package model

import "time"

// Client is a bookable customer record owned by the booking API.
type Client struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Document   string    `json:"document,omitempty"`
	State      string    `json:"state"`
	ClientType string    `json:"clientType,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ClientSearchType selects the search key for client lookup.
type ClientSearchType string

const (
	SearchByEmail    ClientSearchType = "email"
	SearchByDocument ClientSearchType = "document"
)

// CreateClientRequest updates or creates a bare client record.
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Document string `json:"document,omitempty"`
}

// RegisterClientForm is the multipart registration the admin panel submits
// when the operator creates a client mid-reservation. Defaults mirror what
// the panel always sends for operator-created accounts.
type RegisterClientForm struct {
	Name      string `form:"name" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Phone     string `form:"phone"`
	Password  string `form:"password" binding:"required"`
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Gender    string `form:"gender"`
	Birthdate string `form:"birthdate"`
	Document  string `form:"document"`
}

// RegisterDefaults are the fixed multipart fields sent alongside the form.
func RegisterDefaults() map[string]string {
	return map[string]string{
		"empresaId":      "0",
		"sedeId":         "0",
		"countryId":      "1",
		"clientType":     "people",
		"role":           RoleClient,
		"state":          "enabled",
		"acceptTerms":    "true",
		"acceptPolitics": "true",
		"idioma":         "es",
		"categoryIds":    "1,5,10",
	}
}

// RegisteredClient is the booking API's envelope for a freshly registered
// client account.
type RegisteredClient struct {
	Message string `json:"message"`
	User    struct {
		ID         int64  `json:"id"`
		Email      string `json:"email"`
		ClientType string `json:"clientType"`
		State      string `json:"state"`
		UserData   struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Phone string `json:"phone"`
			Email string `json:"email"`
		} `json:"UserData"`
	} `json:"user"`
}
