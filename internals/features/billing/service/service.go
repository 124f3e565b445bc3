// file: internals/features/billing/service/service.go
package service

import (
	"fmt"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers/capture"
)

// CaptureFolder: subcarpeta del bucket donde viven los comprobantes.
const CaptureFolder = "captures"

// BillingService es el motor de consistencia semanas/llamadas/pagos.
// Toda mutación relacional de una operación corre en UNA transacción; las
// llamadas al almacén de comprobantes quedan fuera de ella y se ordenan según
// qué inconsistencia es menos dañina si algo falla a mitad de camino.
type BillingService struct {
	DB       *gorm.DB
	Captures capture.Store
}

func NewBillingService(db *gorm.DB, captures capture.Store) *BillingService {
	return &BillingService{DB: db, Captures: captures}
}

// CaptureName arma el nombre determinístico del comprobante:
// "{año}{mes}[{etiqueta}] {usuario}", ej. "2024Marzo[01 - 07] jperez".
func CaptureName(week *model.WeekModel, userName string) string {
	return fmt.Sprintf("%d%s[%s] %s", week.WeekYear, week.WeekMonth, week.WeekLabel, userName)
}

// round2: redondeo monetario a dos decimales.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// lockForUpdate aplica FOR UPDATE solo en Postgres; sqlite (tests) serializa
// escritores por sí mismo y no parsea la cláusula.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
