package model

// Sede is a physical branch scoped under a company.
type Sede struct {
	ID         int64             `json:"id"`
	Name       string            `json:"nombre"`
	Address    string            `json:"direccion"`
	Phone      string            `json:"telefono"`
	Latitude   float64           `json:"latitud"`
	Longitude  float64           `json:"longitud"`
	Province   string            `json:"provincia"`
	Schedule   map[string]string `json:"horario"`
	ClosedDays []string          `json:"diasCerrado"`
	Images     []string          `json:"imagenes"`
	CompanyID  int64             `json:"empresaId"`
}

// ServicePrice is a price/duration tuple offered for a service.
type ServicePrice struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	DurationMin int     `json:"duration"`
	Currency    string  `json:"currency"`
}

// Service is an offerable service carried on a professional's list.
type Service struct {
	ID          int64          `json:"id"`
	Name        string         `json:"nombre"`
	Description string         `json:"descripcion"`
	Category    string         `json:"categoria"`
	Prices      []ServicePrice `json:"precios"`
}

// Price returns the leading price/duration tuple, or zero values when the
// remote record carries none.
func (s *Service) Price() (amount float64, durationMin int) {
	if len(s.Prices) == 0 {
		return 0, 0
	}
	return s.Prices[0].Amount, s.Prices[0].DurationMin
}

// Professional is a specialist employed at a branch, with the services they
// offer.
type Professional struct {
	ID       int64     `json:"id"`
	Name     string    `json:"nombre"`
	Bio      string    `json:"biografia"`
	Image    string    `json:"imagen"`
	Phone    string    `json:"telefono"`
	State    string    `json:"state"`
	SedeID   int64     `json:"sedeId"`
	Services []Service `json:"servicios"`
}

// CategoryTranslation is a localized category name.
type CategoryTranslation struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	CategoryID  int64  `json:"categoryId"`
}

// Category is a service grouping with localized names.
type Category struct {
	ID           int64                 `json:"id"`
	Image        string                `json:"image"`
	Translations []CategoryTranslation `json:"translations"`
}

// LocalizedName returns the first translation's name, or a placeholder.
func (c *Category) LocalizedName() string {
	if len(c.Translations) == 0 {
		return "Sin nombre"
	}
	return c.Translations[0].Name
}
