package bookingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

// LatestAppointments returns the most recent appointments for a branch.
func (c *Client) LatestAppointments(ctx context.Context, sedeID int64, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 5
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var out []model.Appointment
	path := fmt.Sprintf("/appointments/branches/%d/latest", sedeID)
	if err := c.do(ctx, "appointments.latest", http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterAppointments returns one page of the filtered listing.
func (c *Client) FilterAppointments(ctx context.Context, filter model.AppointmentFilter) (*model.AppointmentPage, error) {
	query := url.Values{}
	if filter.SedeID != 0 {
		query.Set("sedeId", strconv.FormatInt(filter.SedeID, 10))
	}
	if filter.Date != "" {
		query.Set("date", filter.Date)
	}
	if filter.StartDate != "" {
		query.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("endDate", filter.EndDate)
	}
	if filter.ServiceID != 0 {
		query.Set("serviceId", strconv.FormatInt(filter.ServiceID, 10))
	}
	if filter.Hour != "" {
		query.Set("hour", filter.Hour)
	}
	if filter.Page != 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit != 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var out model.AppointmentPage
	if err := c.do(ctx, "appointments.filter", http.MethodGet, "/appointments/filter", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelAppointment flips an appointment to CANCELLED.
func (c *Client) CancelAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	var out model.Appointment
	path := fmt.Sprintf("/appointments/%d/cancel", id)
	if err := c.do(ctx, "appointments.cancel", http.MethodPatch, path, nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAppointment submits the composed reservation payload.
func (c *Client) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	var out model.Appointment
	if err := c.do(ctx, "appointments.create", http.MethodPost, "/appointments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
