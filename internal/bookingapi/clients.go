package bookingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

// SearchClients looks clients up by a single key. The remote returns an
// empty list rather than 404 when nothing matches.
func (c *Client) SearchClients(ctx context.Context, searchType model.ClientSearchType, term string) ([]model.Client, error) {
	query := url.Values{string(searchType): {term}}

	var out []model.Client
	if err := c.do(ctx, "clients.search", http.MethodGet, "/clients/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListClients returns every client visible to the operator.
func (c *Client) ListClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	if err := c.do(ctx, "clients.list", http.MethodGet, "/clients", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateClient creates a bare client record.
func (c *Client) CreateClient(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	var out model.Client
	if err := c.do(ctx, "clients.create", http.MethodPost, "/clients", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClient replaces a client's editable fields.
func (c *Client) UpdateClient(ctx context.Context, id int64, req *model.CreateClientRequest) (*model.Client, error) {
	var out model.Client
	path := fmt.Sprintf("/clients/%d", id)
	if err := c.do(ctx, "clients.update", http.MethodPut, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterClient creates a full client account through the public multipart
// registration endpoint, with the panel's fixed defaults merged in.
func (c *Client) RegisterClient(ctx context.Context, form *model.RegisterClientForm) (*model.RegisteredClient, error) {
	fields := model.RegisterDefaults()
	fields["name"] = form.Name
	fields["email"] = form.Email
	fields["password"] = form.Password
	if form.Phone != "" {
		fields["phone"] = form.Phone
	}
	if form.FirstName != "" {
		fields["firstName"] = form.FirstName
	}
	if form.LastName != "" {
		fields["lastName"] = form.LastName
	}
	if form.Gender != "" {
		fields["gender"] = form.Gender
	}
	if form.Birthdate != "" {
		fields["birthdate"] = form.Birthdate
	}
	if form.Document != "" {
		fields["document"] = form.Document
	}

	var out model.RegisteredClient
	if err := c.doMultipart(ctx, "clients.register", "/auth/register", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
