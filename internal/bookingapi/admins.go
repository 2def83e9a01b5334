package bookingapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

// ListAdmins returns the administrative accounts visible to the operator.
func (c *Client) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var out []model.Admin
	if err := c.do(ctx, "admins.list", http.MethodGet, "/admin/admins", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCompanyAdmin provisions a company-scoped administrator.
func (c *Client) CreateCompanyAdmin(ctx context.Context, companyID int64, form *model.AdminForm) (*model.Admin, error) {
	var out model.Admin
	path := fmt.Sprintf("/admin/companies/%d/admins", companyID)
	if err := c.do(ctx, "admins.create_company", http.MethodPost, path, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBranchAdmin provisions an administrator bound to a single branch.
func (c *Client) CreateBranchAdmin(ctx context.Context, sedeID int64, form *model.AdminForm) (*model.Admin, error) {
	var out model.Admin
	path := fmt.Sprintf("/admin/branches/%d/admins", sedeID)
	if err := c.do(ctx, "admins.create_branch", http.MethodPost, path, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
