package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	reservationservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/reservation"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/session"
)

type fakeSubmitAPI struct {
	created *model.Appointment
	err     error
}

func (f *fakeSubmitAPI) CreateAppointment(context.Context, *model.CreateAppointmentRequest) (*model.Appointment, error) {
	return f.created, f.err
}

type fakeCatalog struct {
	professionals []model.Professional
}

func (f *fakeCatalog) ProfessionalsBySede(context.Context, int64, string) ([]model.Professional, error) {
	return f.professionals, nil
}

func testProfessionals() []model.Professional {
	return []model.Professional{
		{
			ID: 9, Name: "María", SedeID: 12,
			Services: []model.Service{
				{
					ID: 21, Name: "Corte de cabello",
					Prices: []model.ServicePrice{{ID: 1, Amount: 25, DurationMin: 60, Currency: "USD"}},
				},
			},
		},
	}
}

func newTestRouter(t *testing.T, api *fakeSubmitAPI) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := reservationservice.NewService(api, nil, audit.NewService(nil, zerolog.Nop()), nil, zerolog.Nop())
	h := NewHandler(svc, &fakeCatalog{professionals: testProfessionals()})

	sede := int64(12)
	sess := &session.Session{
		ID: "sess-1",
		User: &model.User{
			ID: 7, Role: model.RoleBranchAdmin,
			AdminProfile: &model.AdminProfile{CompanyID: 2, SedeID: &sede},
		},
	}

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, sess)
		c.Set(middleware.SessionIDContextKey, "sess-1")
	})
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestWizardFullFlow(t *testing.T) {
	engine := newTestRouter(t, &fakeSubmitAPI{created: &model.Appointment{ID: 99, Status: model.AppointmentStatusPending}})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/client", gin.H{
		"id": 3, "name": "Ana Torres", "email": "ana@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/service", gin.H{
		"specialistId": 9, "serviceId": 21,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	// Price and duration come from the catalog, not the request.
	assert.Contains(t, w.Body.String(), `"price":25`)
	assert.Contains(t, w.Body.String(), `"durationMinutes":60`)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/date", gin.H{"date": "2027-06-15"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/time", gin.H{"slot": "9:00 am - 10:00 am"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/payment", gin.H{"method": "CASH"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/reservations/draft/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana Torres")

	w = doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/submit", gin.H{"confirm": true})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":99`)
}

func TestWizardRejectsUnknownService(t *testing.T) {
	engine := newTestRouter(t, &fakeSubmitAPI{})

	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft", nil)
	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/client", gin.H{
		"id": 3, "name": "Ana Torres", "email": "ana@example.com",
	})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/service", gin.H{
		"specialistId": 9, "serviceId": 999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardRejectsUnknownSpecialist(t *testing.T) {
	engine := newTestRouter(t, &fakeSubmitAPI{})

	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft", nil)
	w := doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/service", gin.H{
		"specialistId": 777,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitWithoutConfirmFails(t *testing.T) {
	engine := newTestRouter(t, &fakeSubmitAPI{created: &model.Appointment{ID: 99}})

	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft", nil)
	w := doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/submit", gin.H{"confirm": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitFailureSurfacesDebugPayload(t *testing.T) {
	engine := newTestRouter(t, &fakeSubmitAPI{err: assert.AnError})

	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft", nil)
	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/client", gin.H{
		"id": 3, "name": "Ana Torres", "email": "ana@example.com",
	})
	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/service", gin.H{
		"specialistId": 9, "serviceId": 21,
	})
	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/date", gin.H{"date": "2027-06-15"})
	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/time", gin.H{"slot": "9:00 am - 10:00 am"})
	doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/payment", gin.H{"method": "CASH"})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/reservations/draft/submit", gin.H{"confirm": true})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	// The attempted payload rides along for debugging.
	assert.Contains(t, w.Body.String(), `"debug"`)
	assert.Contains(t, w.Body.String(), `"serviceId":21`)
}
