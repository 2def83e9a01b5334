package bookingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

// Categories returns the service categories localized for language.
func (c *Client) Categories(ctx context.Context, language string) ([]model.Category, error) {
	if language == "" {
		language = "es"
	}
	key := "categories:" + language

	v, err := c.cached(key, func() (interface{}, error) {
		query := url.Values{"language": {language}}
		var out []model.Category
		if err := c.do(ctx, "catalog.categories", http.MethodGet, "/categories", query, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Category), nil
}

// Sedes returns the branches of a company.
func (c *Client) Sedes(ctx context.Context, companyID int64) ([]model.Sede, error) {
	key := fmt.Sprintf("sedes:%d", companyID)

	v, err := c.cached(key, func() (interface{}, error) {
		path := fmt.Sprintf("/sedes/empresa/%d", companyID)
		var out []model.Sede
		if err := c.do(ctx, "catalog.sedes", http.MethodGet, path, nil, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Sede), nil
}

// ProfessionalsBySede returns the specialists working at a branch, each with
// their offerable services.
func (c *Client) ProfessionalsBySede(ctx context.Context, sedeID int64, language string) ([]model.Professional, error) {
	if language == "" {
		language = "es"
	}
	key := fmt.Sprintf("professionals:%d:%s", sedeID, language)

	v, err := c.cached(key, func() (interface{}, error) {
		path := fmt.Sprintf("/profesionales/by-sede/%d", sedeID)
		query := url.Values{"lang": {language}}
		var out []model.Professional
		if err := c.do(ctx, "catalog.professionals", http.MethodGet, path, query, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Professional), nil
}
