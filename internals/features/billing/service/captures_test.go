// file: internals/features/billing/service/captures_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
)

func TestCaptureName_Format(t *testing.T) {
	week := &model.WeekModel{WeekYear: 2024, WeekMonth: "Marzo", WeekLabel: "01 - 07"}
	assert.Equal(t, "2024Marzo[01 - 07] jperez", service.CaptureName(week, "jperez"))
}

func TestRenameUserCaptures_RenamesAllLiveCaptures(t *testing.T) {
	svc, store, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	w1 := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	w2 := seedWeek(t, svc, 2024, "Marzo", "08 - 14")
	pay1 := seedPayment(t, svc, ana.ID, w1.WeekID, 50)
	pay2 := seedPayment(t, svc, ana.ID, w2.WeekID, 60)
	pay1 = attachCapture(t, svc, pay1.PaymentID)
	pay2 = attachCapture(t, svc, pay2.PaymentID)
	// un pago sin comprobante no participa
	seedPayment(t, svc, seedUser(t, db, "beto").ID, w1.WeekID, 10)

	res, err := svc.RenameUserCaptures(ctx, ana.ID, "ana.garcia")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Renamed)
	assert.Empty(t, res.Degraded)

	for _, id := range []string{*pay1.PaymentCaptureID, *pay2.PaymentCaptureID} {
		assert.False(t, store.has(id), "el objeto viejo %s no debería seguir en el bucket", id)
	}

	var renamed model.PaymentModel
	require.NoError(t, db.First(&renamed, "payment_id = ?", pay1.PaymentID).Error)
	require.True(t, renamed.HasCapture())
	assert.Contains(t, *renamed.PaymentCaptureID, "ana.garcia")
	assert.True(t, store.has(*renamed.PaymentCaptureID))
}

// Si un rename falla, ese pago queda sin referencia (ambas columnas en NULL)
// en vez de apuntar a un nombre que ya no describe al usuario. Los demás
// siguen su curso.
func TestRenameUserCaptures_DegradesToEmptyOnFailure(t *testing.T) {
	svc, store, db := newTestService(t)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	w1 := seedWeek(t, svc, 2024, "Marzo", "01 - 07")
	w2 := seedWeek(t, svc, 2024, "Marzo", "08 - 14")
	pay1 := seedPayment(t, svc, ana.ID, w1.WeekID, 50)
	pay2 := seedPayment(t, svc, ana.ID, w2.WeekID, 60)
	pay1 = attachCapture(t, svc, pay1.PaymentID)
	pay2 = attachCapture(t, svc, pay2.PaymentID)

	store.failRename[*pay1.PaymentCaptureID] = true

	res, err := svc.RenameUserCaptures(ctx, ana.ID, "ana.garcia")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Renamed)
	require.Len(t, res.Degraded, 1)
	assert.Equal(t, pay1.PaymentID, res.Degraded[0])

	var degraded model.PaymentModel
	require.NoError(t, db.First(&degraded, "payment_id = ?", pay1.PaymentID).Error)
	assert.Nil(t, degraded.PaymentCaptureID)
	assert.Nil(t, degraded.PaymentCaptureURL)

	var ok model.PaymentModel
	require.NoError(t, db.First(&ok, "payment_id = ?", pay2.PaymentID).Error)
	require.True(t, ok.HasCapture())
	assert.Contains(t, *ok.PaymentCaptureID, "ana.garcia")
}

func TestRenameUserCaptures_NoCapturesIsNoop(t *testing.T) {
	svc, _, db := newTestService(t)

	ana := seedUser(t, db, "ana")
	res, err := svc.RenameUserCaptures(context.Background(), ana.ID, "ana.garcia")
	require.NoError(t, err)
	assert.Zero(t, res.Renamed)
	assert.Empty(t, res.Degraded)
}
