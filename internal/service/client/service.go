package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
)

// BookingClientAPI is the slice of the booking client this service needs.
type BookingClientAPI interface {
	SearchClients(ctx context.Context, searchType model.ClientSearchType, term string) ([]model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error)
	UpdateClient(ctx context.Context, id int64, req *model.CreateClientRequest) (*model.Client, error)
	RegisterClient(ctx context.Context, form *model.RegisterClientForm) (*model.RegisteredClient, error)
}

// SearchResult is what the search screen renders. When nothing matches, the
// result carries a creation form pre-seeded with the search term so the
// operator can register the client on the spot.
type SearchResult struct {
	Matches     []model.Client            `json:"matches"`
	CreateOffer *model.RegisterClientForm `json:"createOffer,omitempty"`
}

type Service struct {
	api     BookingClientAPI
	auditor *audit.Service
	logger  zerolog.Logger
}

func NewService(api BookingClientAPI, auditor *audit.Service, logger zerolog.Logger) *Service {
	return &Service{api: api, auditor: auditor, logger: logger}
}

// Search looks clients up by email or document. An empty result set is a
// success that offers creation, not an error.
func (s *Service) Search(ctx context.Context, searchType model.ClientSearchType, term string) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.Validation("ingresa un correo o documento para buscar")
	}
	if searchType != model.SearchByEmail && searchType != model.SearchByDocument {
		return nil, apperrors.Validation("tipo de búsqueda inválido")
	}

	matches, err := s.api.SearchClients(ctx, searchType, term)
	if err != nil {
		return nil, apperrors.Remote("la búsqueda de clientes falló", err)
	}

	result := &SearchResult{Matches: matches}
	if len(matches) == 0 {
		offer := &model.RegisterClientForm{}
		if searchType == model.SearchByEmail {
			offer.Email = term
		} else {
			offer.Document = term
		}
		result.CreateOffer = offer
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]model.Client, error) {
	clients, err := s.api.ListClients(ctx)
	if err != nil {
		return nil, apperrors.Remote("no se pudo cargar la lista de clientes", err)
	}
	return clients, nil
}

// Create adds a bare client record with no login account. Registration is
// the heavier path that provisions credentials.
func (s *Service) Create(ctx context.Context, actor *model.User, req *model.CreateClientRequest) (*model.Client, error) {
	created, err := s.api.CreateClient(ctx, req)
	if err != nil {
		return nil, apperrors.Remote("no se pudo crear el cliente", err)
	}

	s.auditor.Log(ctx, actor, "client_created", "client", fmt.Sprintf("%d", created.ID), nil)
	return created, nil
}

// Register creates a full client account with the panel's fixed defaults.
func (s *Service) Register(ctx context.Context, actor *model.User, form *model.RegisterClientForm) (*model.Client, error) {
	registered, err := s.api.RegisterClient(ctx, form)
	if err != nil {
		return nil, apperrors.Remote("no se pudo registrar el cliente", err)
	}

	s.auditor.Log(ctx, actor, "client_registered", "client", fmt.Sprintf("%d", registered.User.ID), nil)

	// Flatten the registration envelope so the wizard can auto-select the
	// new client without a second lookup.
	return &model.Client{
		ID:    registered.User.ID,
		Name:  registered.User.UserData.Name,
		Email: registered.User.Email,
		Phone: registered.User.UserData.Phone,
		State: registered.User.State,
	}, nil
}

func (s *Service) Update(ctx context.Context, actor *model.User, id int64, req *model.CreateClientRequest) (*model.Client, error) {
	updated, err := s.api.UpdateClient(ctx, id, req)
	if err != nil {
		return nil, apperrors.Remote("no se pudo actualizar el cliente", err)
	}

	s.auditor.Log(ctx, actor, "client_updated", "client", fmt.Sprintf("%d", id), nil)
	return updated, nil
}
