package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
)

var now = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

func testClient() *model.Client {
	return &model.Client{ID: 3, Name: "Ana Torres", Email: "ana@example.com", Phone: "555-0101"}
}

func completeSelection(t *testing.T, d *Draft) {
	t.Helper()
	require.NoError(t, d.Apply(SelectClient{Client: testClient()}, now))
	require.NoError(t, d.Apply(ChooseService{
		SpecialistID:   9,
		SpecialistName: "María",
		ServiceID:      21,
		ServiceName:    "Corte de cabello",
		Price:          25,
		DurationMin:    60,
	}, now))
}

func TestDraftStartsAtSelection(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, StepSelection, d.Step)
	assert.Nil(t, d.Client)
}

func TestServiceRequiresClient(t *testing.T) {
	d := NewDraft()

	err := d.Apply(ChooseService{SpecialistID: 9, ServiceID: 21}, now)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, StepSelection, d.Step)
	assert.Zero(t, d.ServiceID)
}

func TestRejectedServiceLeavesDraftUntouched(t *testing.T) {
	d := &Draft{
		Step:           StepSelection,
		SpecialistID:   9,
		SpecialistName: "María",
		ServiceID:      21,
		ServiceName:    "Corte de cabello",
		Price:          25,
		DurationMin:    60,
	}

	err := d.Apply(ChooseService{SpecialistID: 14, SpecialistName: "Lucía", ServiceID: 22}, now)
	assert.True(t, apperrors.IsValidation(err))

	// The failed command must not have swapped the specialist or cleared
	// the previous service.
	assert.Equal(t, int64(9), d.SpecialistID)
	assert.Equal(t, "María", d.SpecialistName)
	assert.Equal(t, int64(21), d.ServiceID)
	assert.Equal(t, "Corte de cabello", d.ServiceName)
	assert.Equal(t, float64(25), d.Price)
	assert.Equal(t, 60, d.DurationMin)
}

func TestSpecialistAloneDoesNotAdvance(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.Apply(SelectClient{Client: testClient()}, now))

	require.NoError(t, d.Apply(ChooseService{SpecialistID: 9, SpecialistName: "María"}, now))
	assert.Equal(t, StepSelection, d.Step)
	assert.Equal(t, int64(9), d.SpecialistID)
}

func TestSelectionAdvancesToDate(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)

	assert.Equal(t, StepDate, d.Step)
	assert.Equal(t, int64(21), d.ServiceID)
	assert.Equal(t, 60, d.DurationMin)
	// Contact is seeded from the selected client.
	assert.Equal(t, "Ana Torres", d.Contact.Name)
	assert.Equal(t, "ana@example.com", d.Contact.Email)
}

func TestChangingSpecialistClearsService(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)
	require.NoError(t, d.Apply(Back{}, now))

	require.NoError(t, d.Apply(ChooseService{SpecialistID: 14, SpecialistName: "Lucía"}, now))
	assert.Zero(t, d.ServiceID)
	assert.Empty(t, d.ServiceName)
	assert.Zero(t, d.Price)
	assert.Equal(t, int64(14), d.SpecialistID)
}

func TestSameSpecialistKeepsService(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)
	require.NoError(t, d.Apply(Back{}, now))

	require.NoError(t, d.Apply(ChooseService{
		SpecialistID: 9, SpecialistName: "María",
		ServiceID: 22, ServiceName: "Manicure", Price: 15, DurationMin: 30,
	}, now))
	assert.Equal(t, int64(22), d.ServiceID)
	assert.Equal(t, StepDate, d.Step)
}

func TestPastDateRejected(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)

	err := d.Apply(ChooseDate{Date: now.AddDate(0, 0, -1)}, now)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, StepDate, d.Step)
}

func TestTodayAccepted(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	require.NoError(t, d.Apply(ChooseDate{Date: today}, now))
	assert.Equal(t, StepTime, d.Step)
}

func TestUnknownSlotRejected(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)
	require.NoError(t, d.Apply(ChooseDate{Date: now.AddDate(0, 0, 2)}, now))

	err := d.Apply(ChooseTime{Slot: "6:00 pm - 7:00 pm"}, now)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, StepTime, d.Step)
}

func TestTimeAdvancesToConfirm(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)
	require.NoError(t, d.Apply(ChooseDate{Date: now.AddDate(0, 0, 2)}, now))
	require.NoError(t, d.Apply(ChooseTime{Slot: "2:00 pm - 3:00 pm"}, now))

	assert.Equal(t, StepConfirm, d.Step)
	assert.Equal(t, "2:00 pm - 3:00 pm", d.TimeSlot)
}

func TestStepsCannotBeSkipped(t *testing.T) {
	d := NewDraft()

	err := d.Apply(ChooseDate{Date: now.AddDate(0, 0, 1)}, now)
	assert.True(t, apperrors.IsValidation(err))

	err = d.Apply(ChooseTime{Slot: daySlots[0]}, now)
	assert.True(t, apperrors.IsValidation(err))

	err = d.Apply(SetPayment{Payment: Payment{Method: model.PaymentMethodCash}}, now)
	assert.True(t, apperrors.IsValidation(err))

	assert.Equal(t, StepSelection, d.Step)
}

func TestBackKeepsLaterData(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)
	require.NoError(t, d.Apply(ChooseDate{Date: now.AddDate(0, 0, 2)}, now))
	require.NoError(t, d.Apply(ChooseTime{Slot: "9:00 am - 10:00 am"}, now))

	require.NoError(t, d.Apply(Back{}, now))
	assert.Equal(t, StepTime, d.Step)
	assert.Equal(t, "9:00 am - 10:00 am", d.TimeSlot)

	require.NoError(t, d.Apply(Back{}, now))
	assert.Equal(t, StepDate, d.Step)
	assert.False(t, d.Date.IsZero())
}

func TestBackFromFirstStepRejected(t *testing.T) {
	d := NewDraft()
	err := d.Apply(Back{}, now)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCardPaymentRequiresCardFields(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)
	require.NoError(t, d.Apply(ChooseDate{Date: now.AddDate(0, 0, 2)}, now))
	require.NoError(t, d.Apply(ChooseTime{Slot: "9:00 am - 10:00 am"}, now))

	err := d.Apply(SetPayment{Payment: Payment{Method: model.PaymentMethodCard, CardNumber: "4111111111111111"}}, now)
	assert.True(t, apperrors.IsValidation(err))

	require.NoError(t, d.Apply(SetPayment{Payment: Payment{
		Method:     model.PaymentMethodCard,
		CardNumber: "4111111111111111",
		ExpiryDate: "12/27",
		CVV:        "123",
	}}, now))
}

func TestResetClearsEverything(t *testing.T) {
	d := NewDraft()
	completeSelection(t, d)
	require.NoError(t, d.Apply(ChooseDate{Date: now.AddDate(0, 0, 2)}, now))

	require.NoError(t, d.Apply(Reset{}, now))
	assert.Equal(t, StepSelection, d.Step)
	assert.Nil(t, d.Client)
	assert.Zero(t, d.ServiceID)
	assert.True(t, d.Date.IsZero())
}

func TestReadyToSubmit(t *testing.T) {
	d := NewDraft()
	assert.Error(t, d.ReadyToSubmit())

	completeSelection(t, d)
	require.NoError(t, d.Apply(ChooseDate{Date: now.AddDate(0, 0, 2)}, now))
	require.NoError(t, d.Apply(ChooseTime{Slot: "7:00 am - 8:00 am"}, now))
	assert.Error(t, d.ReadyToSubmit(), "payment method still missing")

	require.NoError(t, d.Apply(SetPayment{Payment: Payment{Method: model.PaymentMethodCash}}, now))
	assert.NoError(t, d.ReadyToSubmit())
}
