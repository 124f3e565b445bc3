// file: internals/features/billing/service/fakes_test.go
package service_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "github.com/jesusbritomolina/EscombrosApp-sub000/internals/databases"
	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	userModel "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers/capture"
)

// fakeStore simula el almacén de comprobantes en memoria, con inyección de
// fallas por operación para probar los caminos de degradación.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string]string // id -> nombre lógico
	uploads int
	deleted []string

	failUpload bool
	failDelete map[string]bool
	failRename map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:    map[string]string{},
		failDelete: map[string]bool{},
		failRename: map[string]bool{},
	}
}

func (f *fakeStore) idFor(name string) string {
	return "captures/" + name + ".webp"
}

func (f *fakeStore) Upload(ctx context.Context, content io.Reader, name, folder string) (capture.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return capture.UploadResult{}, fmt.Errorf("%w: upload", capture.ErrServiceUnstable)
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return capture.UploadResult{}, err
	}
	id := f.idFor(name)
	f.objects[id] = name
	f.uploads++
	return capture.UploadResult{ID: id, URL: "https://bucket.example/" + id}, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete[id] {
		return fmt.Errorf("%w: delete %s", capture.ErrServiceUnstable, id)
	}
	delete(f.objects, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) Rename(ctx context.Context, id, newName string) (capture.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRename[id] {
		return capture.UploadResult{}, fmt.Errorf("%w: rename %s", capture.ErrServiceUnstable, id)
	}
	if _, ok := f.objects[id]; !ok {
		return capture.UploadResult{}, fmt.Errorf("%w: rename %s: no such object", capture.ErrServiceUnstable, id)
	}
	delete(f.objects, id)
	newID := f.idFor(newName)
	f.objects[newID] = newName
	return capture.UploadResult{ID: newID, URL: "https://bucket.example/" + newID}, nil
}

func (f *fakeStore) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[id]
	return ok
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// newTestService levanta el motor contra sqlite en memoria con el mismo
// esquema que producción (mismas migraciones, TranslateError activo).
func newTestService(t *testing.T) (*service.BillingService, *fakeStore, *gorm.DB) {
	t.Helper()

	// _foreign_keys=on: las cascadas de FK (semana → llamadas/pagos) deben
	// comportarse igual que en postgres.
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	store := newFakeStore()
	return service.NewBillingService(db, store), store, db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName: name,
		Email:    name + "@escombros.app",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPhone(t *testing.T, svc *service.BillingService, userID uuid.UUID, number string) *model.PhoneModel {
	t.Helper()
	p, err := svc.AddPhone(context.Background(), userID, number)
	require.NoError(t, err)
	return p
}

func seedWeek(t *testing.T, svc *service.BillingService, year int16, month, label string) *model.WeekModel {
	t.Helper()
	w, err := svc.CreateWeek(context.Background(), year, month, label)
	require.NoError(t, err)
	return w
}

func seedPayment(t *testing.T, svc *service.BillingService, userID, weekID uuid.UUID, amount float64) *model.PaymentModel {
	t.Helper()
	p, err := svc.AddPayment(context.Background(), userID, weekID, amount, "Banesco")
	require.NoError(t, err)
	return p
}

// attachCapture sube un comprobante falso al pago via UpdatePayment.
func attachCapture(t *testing.T, svc *service.BillingService, paymentID uuid.UUID) *model.PaymentModel {
	t.Helper()
	p, err := svc.UpdatePayment(context.Background(), paymentID, service.UpdatePaymentInput{
		NewImage:     strings.NewReader("fake-image-bytes"),
		NewImageName: "comprobante.png",
	})
	require.NoError(t, err)
	require.True(t, p.HasCapture())
	return p
}

func countRows(t *testing.T, db *gorm.DB, m any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
