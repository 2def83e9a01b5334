package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/email"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
)

const draftTTL = 30 * time.Minute

// BookingAdminAPI is the slice of the booking client this service needs.
type BookingAdminAPI interface {
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	CreateCompanyAdmin(ctx context.Context, companyID int64, form *model.AdminForm) (*model.Admin, error)
	CreateBranchAdmin(ctx context.Context, sedeID int64, form *model.AdminForm) (*model.Admin, error)
}

// Draft is the in-progress admin provisioning state: type, then form, then
// review. Editing an existing admin enters at the form step with the type
// pinned to that admin's role.
type Draft struct {
	Step       int               `json:"step"`
	Type       model.AdminType   `json:"type,omitempty"`
	TypePinned bool              `json:"typePinned"`
	Options    []model.AdminType `json:"options"`
	Form       model.AdminForm   `json:"form"`
	EditID     int64             `json:"editId,omitempty"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

const (
	stepType   = 1
	stepForm   = 2
	stepReview = 3
)

type Service struct {
	api     BookingAdminAPI
	drafts  *cache.Cache
	mailer  email.Service
	auditor *audit.Service
	logger  zerolog.Logger
}

func NewService(api BookingAdminAPI, mailer email.Service, auditor *audit.Service, logger zerolog.Logger) *Service {
	return &Service{
		api:     api,
		drafts:  cache.New(draftTTL, 10*time.Minute),
		mailer:  mailer,
		auditor: auditor,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.api.ListAdmins(ctx)
	if err != nil {
		return nil, apperrors.Remote("no se pudo cargar la lista de administradores", err)
	}
	return admins, nil
}

// typeOptions filters the provisioning targets by the operator's own scope.
// A company-scoped operator can only ever create branch admins.
func typeOptions(operator *model.User) []model.AdminType {
	if operator.Role == model.RoleCompanyAdmin {
		return []model.AdminType{model.AdminTypeBranch}
	}
	return []model.AdminType{model.AdminTypeCompany, model.AdminTypeBranch}
}

// Start opens a fresh provisioning draft for the session.
func (s *Service) Start(sessionID string, operator *model.User) *Draft {
	d := &Draft{
		Step:      stepType,
		Options:   typeOptions(operator),
		Form:      model.DefaultAdminForm(),
		UpdatedAt: time.Now(),
	}
	s.drafts.SetDefault(sessionID, d)
	return d
}

// StartEdit seeds a draft from an existing admin. The type step is skipped
// and the type is pinned to the admin's current role.
func (s *Service) StartEdit(sessionID string, operator *model.User, existing *model.Admin) (*Draft, error) {
	adminType := model.AdminTypeCompany
	if existing.Role == model.RoleBranchAdmin {
		adminType = model.AdminTypeBranch
	}
	if adminType == model.AdminTypeCompany && operator.Role == model.RoleCompanyAdmin {
		return nil, apperrors.Forbidden("no puedes editar administradores de empresa")
	}

	form := model.DefaultAdminForm()
	form.Email = existing.Email
	if existing.AdminProfile != nil {
		form.FirstName = existing.AdminProfile.FirstName
		form.LastName = existing.AdminProfile.LastName
		form.Phone = existing.AdminProfile.Phone
		form.CompanyID = existing.AdminProfile.CompanyID
		form.SedeID = existing.AdminProfile.SedeID
	}
	if existing.PersonalData != nil {
		form.Name = existing.PersonalData.Name
		if existing.PersonalData.Gender != "" {
			form.Gender = existing.PersonalData.Gender
		}
		if existing.PersonalData.Birthdate != "" {
			form.Birthdate = existing.PersonalData.Birthdate
		}
	}

	d := &Draft{
		Step:       stepForm,
		Type:       adminType,
		TypePinned: true,
		Options:    []model.AdminType{adminType},
		Form:       form,
		EditID:     existing.ID,
		UpdatedAt:  time.Now(),
	}
	s.drafts.SetDefault(sessionID, d)
	return d, nil
}

// Get returns the session's draft, creating one when none exists.
func (s *Service) Get(sessionID string, operator *model.User) *Draft {
	if v, ok := s.drafts.Get(sessionID); ok {
		return v.(*Draft)
	}
	return s.Start(sessionID, operator)
}

// SetType records the provisioning target and moves to the form step.
func (s *Service) SetType(sessionID string, operator *model.User, adminType model.AdminType) (*Draft, error) {
	d := s.Get(sessionID, operator)
	if d.TypePinned {
		return d, apperrors.Validation("el tipo de administrador no se puede cambiar en una edición")
	}
	if adminType != model.AdminTypeCompany && adminType != model.AdminTypeBranch {
		return d, apperrors.Validation("tipo de administrador inválido")
	}
	if adminType == model.AdminTypeCompany && operator.Role == model.RoleCompanyAdmin {
		return d, apperrors.Forbidden("no puedes crear administradores de empresa")
	}

	d.Type = adminType
	d.Step = stepForm
	d.UpdatedAt = time.Now()
	s.drafts.SetDefault(sessionID, d)
	return d, nil
}

// SetForm merges the submitted account form and moves to the review step.
func (s *Service) SetForm(sessionID string, operator *model.User, form model.AdminForm) (*Draft, error) {
	d := s.Get(sessionID, operator)
	if d.Step < stepForm {
		return d, apperrors.Validation("selecciona primero el tipo de administrador")
	}
	if form.FirstName == "" || form.LastName == "" {
		return d, apperrors.Validation("nombre y apellido son obligatorios")
	}
	if form.Email == "" {
		return d, apperrors.Validation("el correo es obligatorio")
	}
	if form.Name == "" {
		form.Name = form.FirstName + " " + form.LastName
	}

	defaults := model.DefaultAdminForm()
	if form.CountryID == 0 {
		form.CountryID = defaults.CountryID
	}
	if form.Locale == "" {
		form.Locale = defaults.Locale
	}
	if form.Gender == "" {
		form.Gender = defaults.Gender
	}
	if form.Birthdate == "" {
		form.Birthdate = defaults.Birthdate
	}
	form.ClientType = defaults.ClientType
	form.State = defaults.State

	d.Form = form
	d.Step = stepReview
	d.UpdatedAt = time.Now()
	s.drafts.SetDefault(sessionID, d)
	return d, nil
}

// Back returns to the previous step. Pinned drafts never go back past the
// form step.
func (s *Service) Back(sessionID string, operator *model.User) (*Draft, error) {
	d := s.Get(sessionID, operator)
	floor := stepType
	if d.TypePinned {
		floor = stepForm
	}
	if d.Step <= floor {
		return d, apperrors.Validation("ya estás en el primer paso")
	}
	d.Step--
	d.UpdatedAt = time.Now()
	s.drafts.SetDefault(sessionID, d)
	return d, nil
}

// Discard abandons the session's draft.
func (s *Service) Discard(sessionID string) {
	s.drafts.Delete(sessionID)
}

// Submit provisions the account through the endpoint matching the chosen
// type and discards the draft. Branch admins need a branch: the form's sede
// id wins, the operator's own branch is the fallback, no branch at all is an
// error.
func (s *Service) Submit(ctx context.Context, sessionID string, operator *model.User) (*model.Admin, error) {
	d := s.Get(sessionID, operator)
	if d.Step != stepReview {
		return nil, apperrors.Validation("completa el formulario antes de confirmar")
	}

	companyID, ok := operator.CompanyID()
	if !ok {
		return nil, apperrors.BadRequest("el perfil del operador no tiene una empresa asignada", nil)
	}
	form := d.Form
	form.CompanyID = companyID

	var created *model.Admin
	var err error
	switch d.Type {
	case model.AdminTypeCompany:
		form.Role = model.RoleCompanyAdmin
		created, err = s.api.CreateCompanyAdmin(ctx, companyID, &form)
	case model.AdminTypeBranch:
		sedeID := int64(0)
		if form.SedeID != nil {
			sedeID = *form.SedeID
		} else if id, ok := operator.SedeID(); ok {
			sedeID = id
		}
		if sedeID == 0 {
			return nil, apperrors.Validation("selecciona la sede del administrador")
		}
		form.Role = model.RoleBranchAdmin
		form.SedeID = &sedeID
		created, err = s.api.CreateBranchAdmin(ctx, sedeID, &form)
	default:
		return nil, apperrors.Validation("selecciona primero el tipo de administrador")
	}
	if err != nil {
		return nil, apperrors.Remote("no se pudo crear el administrador", err)
	}

	s.auditor.Log(ctx, operator, "admin_created", "admin", fmt.Sprintf("%d", created.ID), &audit.LogOptions{
		Metadata: map[string]interface{}{"type": d.Type, "email": form.Email},
	})
	if s.mailer != nil {
		if err := s.mailer.SendAdminWelcome(ctx, form.Email, form.Name); err != nil {
			s.logger.Warn().Err(err).Str("to", form.Email).Msg("failed to send admin welcome email")
		}
	}

	s.Discard(sessionID)
	return created, nil
}
