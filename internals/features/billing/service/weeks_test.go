// file: internals/features/billing/service/weeks_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers/capture"
)

func TestCreateWeek_FansOutToActivePhones(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	beto := seedUser(t, db, "beto")
	p1 := seedPhone(t, svc, ana.ID, "0414-1111111")
	p2 := seedPhone(t, svc, beto.ID, "0424-2222222")
	inactive := seedPhone(t, svc, beto.ID, "0412-3333333")
	_, err := svc.SetPhoneActive(ctx, inactive.PhoneID, false)
	require.NoError(t, err)

	week, err := svc.CreateWeek(ctx, 2024, "Marzo", "01 - 07")
	require.NoError(t, err)
	require.NotNil(t, week)

	var calls []model.CallModel
	require.NoError(t, db.Where("call_week_id = ?", week.WeekID).Find(&calls).Error)
	require.Len(t, calls, 2)

	phoneIDs := map[string]bool{}
	for _, c := range calls {
		phoneIDs[c.CallPhoneID.String()] = true
		assert.Zero(t, c.CallFirstCut)
		assert.Zero(t, c.CallSecondCut)
		assert.Zero(t, c.CallFinalCut)
		assert.Zero(t, c.CallTotal)
	}
	assert.True(t, phoneIDs[p1.PhoneID.String()])
	assert.True(t, phoneIDs[p2.PhoneID.String()])
	assert.False(t, phoneIDs[inactive.PhoneID.String()])
}

func TestCreateWeek_DuplicatePeriod(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateWeek(ctx, 2024, "Marzo", "01 - 07")
	require.NoError(t, err)

	_, err = svc.CreateWeek(ctx, 2024, "Marzo", "01 - 07")
	assert.ErrorIs(t, err, service.ErrDuplicatePeriod)

	// mismo mes con otra etiqueta sí entra
	_, err = svc.CreateWeek(ctx, 2024, "Marzo", "08 - 14")
	require.NoError(t, err)

	assert.EqualValues(t, 2, countRows(t, db, &model.WeekModel{}, ""))
}

func TestCreateWeek_MissingField(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateWeek(ctx, 2024, "", "01 - 07")
	assert.ErrorIs(t, err, service.ErrMissingField)
	_, err = svc.CreateWeek(ctx, 2024, "Marzo", "")
	assert.ErrorIs(t, err, service.ErrMissingField)
	_, err = svc.CreateWeek(ctx, 0, "Marzo", "01 - 07")
	assert.ErrorIs(t, err, service.ErrMissingField)
}

// Un teléfono dado de alta después de abrir la semana no recibe llamada
// retroactiva; entra por AddCall, y solo una vez.
func TestCreateWeek_LatePhoneJoinsViaAddCall(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")

	late := seedPhone(t, svc, ana.ID, "0424-9999999")
	assert.EqualValues(t, 1, countRows(t, db, &model.CallModel{}, "call_week_id = ?", week.WeekID))

	call, err := svc.AddCall(ctx, late.PhoneID, week.WeekID)
	require.NoError(t, err)
	assert.Equal(t, late.PhoneID, call.CallPhoneID)

	_, err = svc.AddCall(ctx, late.PhoneID, week.WeekID)
	assert.ErrorIs(t, err, service.ErrDuplicateCall)

	assert.EqualValues(t, 2, countRows(t, db, &model.CallModel{}, "call_week_id = ?", week.WeekID))
}

func TestDeleteWeek_RemovesCapturesAndCascades(t *testing.T) {
	svc, store, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	payment := seedPayment(t, svc, ana.ID, week.WeekID, 120.50)
	payment = attachCapture(t, svc, payment.PaymentID)
	captureID := *payment.PaymentCaptureID
	require.True(t, store.has(captureID))

	require.NoError(t, svc.DeleteWeek(ctx, week.WeekID))

	assert.False(t, store.has(captureID))
	assert.EqualValues(t, 0, countRows(t, db, &model.WeekModel{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &model.CallModel{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &model.PaymentModel{}, ""))
}

// Si un solo borrado remoto falla, la operación entera aborta sin tocar filas:
// semana, llamadas y pagos quedan exactamente como estaban.
func TestDeleteWeek_AbortsWhenCaptureDeleteFails(t *testing.T) {
	svc, store, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	payment := seedPayment(t, svc, ana.ID, week.WeekID, 120.50)
	payment = attachCapture(t, svc, payment.PaymentID)
	captureID := *payment.PaymentCaptureID

	store.failDelete[captureID] = true

	err := svc.DeleteWeek(ctx, week.WeekID)
	require.Error(t, err)
	assert.ErrorIs(t, err, capture.ErrServiceUnstable)

	assert.EqualValues(t, 1, countRows(t, db, &model.WeekModel{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &model.CallModel{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &model.PaymentModel{}, ""))

	var kept model.PaymentModel
	require.NoError(t, db.First(&kept, "payment_id = ?", payment.PaymentID).Error)
	require.NotNil(t, kept.PaymentCaptureID)
	assert.Equal(t, captureID, *kept.PaymentCaptureID)
}

func TestDeleteWeek_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	require.NoError(t, svc.DeleteWeek(context.Background(), week.WeekID))

	err := svc.DeleteWeek(context.Background(), week.WeekID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
