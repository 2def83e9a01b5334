package bookingapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

// Login authenticates an operator against the booking API.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" || out.User == nil {
		return nil, fmt.Errorf("%w: login response missing token or user", ErrInvalidResponse)
	}
	return &out, nil
}

// Logout invalidates the current remote session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "auth.logout", http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Refresh exchanges the current session for fresh tokens.
func (c *Client) Refresh(ctx context.Context) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.do(ctx, "auth.refresh", http.MethodPost, "/auth/refresh", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("%w: refresh response missing token", ErrInvalidResponse)
	}
	return &out, nil
}
