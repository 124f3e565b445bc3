// file: internals/features/billing/service/calls_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
)

func ptr(v float64) *float64 { return &v }

func TestAddCall_UnknownPhoneOrWeek(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	phone := seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")

	_, err := svc.AddCall(ctx, uuid.New(), week.WeekID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.AddCall(ctx, phone.PhoneID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateCall_RecalculatesTotal(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")

	var call model.CallModel
	require.NoError(t, db.First(&call, "call_week_id = ?", week.WeekID).Error)

	updated, err := svc.UpdateCall(ctx, call.CallID, ptr(10.006), ptr(20.104), ptr(0.333))
	require.NoError(t, err)
	assert.Equal(t, 10.01, updated.CallFirstCut)
	assert.Equal(t, 20.10, updated.CallSecondCut)
	assert.Equal(t, 0.33, updated.CallFinalCut)
	assert.Equal(t, 30.44, updated.CallTotal)

	var persisted model.CallModel
	require.NoError(t, db.First(&persisted, "call_id = ?", call.CallID).Error)
	assert.Equal(t, 30.44, persisted.CallTotal)
}

func TestUpdateCall_MissingCut(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")

	var call model.CallModel
	require.NoError(t, db.First(&call, "call_week_id = ?", week.WeekID).Error)

	_, err := svc.UpdateCall(ctx, call.CallID, ptr(10), nil, ptr(5))
	assert.ErrorIs(t, err, service.ErrMissingField)

	_, err = svc.UpdateCall(ctx, uuid.New(), ptr(1), ptr(2), ptr(3))
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// Mientras al usuario le queden llamadas en la semana, el pago sobrevive.
// Al caer la última, cae también el pago y su comprobante.
func TestDeleteCall_LastCallDeletesPayment(t *testing.T) {
	svc, store, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	p1 := seedPhone(t, svc, ana.ID, "0414-1111111")
	p2 := seedPhone(t, svc, ana.ID, "0424-2222222")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	payment := seedPayment(t, svc, ana.ID, week.WeekID, 75)
	payment = attachCapture(t, svc, payment.PaymentID)
	captureID := *payment.PaymentCaptureID

	var c1, c2 model.CallModel
	require.NoError(t, db.First(&c1, "call_phone_id = ?", p1.PhoneID).Error)
	require.NoError(t, db.First(&c2, "call_phone_id = ?", p2.PhoneID).Error)

	res, err := svc.DeleteCall(ctx, c1.CallID)
	require.NoError(t, err)
	assert.False(t, res.PaymentDeleted)
	assert.EqualValues(t, 1, countRows(t, db, &model.PaymentModel{}, ""))
	assert.True(t, store.has(captureID))

	res, err = svc.DeleteCall(ctx, c2.CallID)
	require.NoError(t, err)
	assert.True(t, res.PaymentDeleted)
	assert.False(t, res.CaptureCleanupFailed)
	assert.EqualValues(t, 0, countRows(t, db, &model.PaymentModel{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &model.CallModel{}, ""))
	assert.False(t, store.has(captureID))
}

// Un bucket caído no bloquea el borrado: el pago cae igual y el caller se
// entera de que quedó un objeto huérfano por limpiar.
func TestDeleteCall_CaptureCleanupFailureStillDeletesPayment(t *testing.T) {
	svc, store, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	payment := seedPayment(t, svc, ana.ID, week.WeekID, 75)
	payment = attachCapture(t, svc, payment.PaymentID)
	captureID := *payment.PaymentCaptureID

	store.failDelete[captureID] = true

	var call model.CallModel
	require.NoError(t, db.First(&call, "call_week_id = ?", week.WeekID).Error)

	res, err := svc.DeleteCall(ctx, call.CallID)
	require.NoError(t, err)
	assert.True(t, res.PaymentDeleted)
	assert.True(t, res.CaptureCleanupFailed)
	assert.Equal(t, captureID, res.OrphanedCaptureID)

	assert.EqualValues(t, 0, countRows(t, db, &model.PaymentModel{}, ""))
	assert.True(t, store.has(captureID)) // huérfano, limpieza manual
}

func TestDeleteCall_LastCallWithoutPayment(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	seedPhone(t, svc, ana.ID, "0414-1111111")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")

	var call model.CallModel
	require.NoError(t, db.First(&call, "call_week_id = ?", week.WeekID).Error)

	res, err := svc.DeleteCall(ctx, call.CallID)
	require.NoError(t, err)
	assert.False(t, res.PaymentDeleted)
	assert.EqualValues(t, 0, countRows(t, db, &model.CallModel{}, ""))
}

// Las llamadas de otro usuario en la misma semana no cuentan para el pago.
func TestDeleteCall_CountsOnlyOwnerCalls(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	beto := seedUser(t, db, "beto")
	pa := seedPhone(t, svc, ana.ID, "0414-1111111")
	seedPhone(t, svc, beto.ID, "0424-2222222")
	week := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	seedPayment(t, svc, ana.ID, week.WeekID, 40)

	var callAna model.CallModel
	require.NoError(t, db.First(&callAna, "call_phone_id = ?", pa.PhoneID).Error)

	res, err := svc.DeleteCall(ctx, callAna.CallID)
	require.NoError(t, err)
	// era la última de ana aunque beto siga teniendo la suya
	assert.True(t, res.PaymentDeleted)
	assert.EqualValues(t, 1, countRows(t, db, &model.CallModel{}, ""))
}

func TestDeleteCall_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.DeleteCall(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
