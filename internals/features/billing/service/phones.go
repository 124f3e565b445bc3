// file: internals/features/billing/service/phones.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
)

// AddPhone da de alta un teléfono para un usuario. El número es único.
// Ojo: si hay una semana abierta, la primera llamada se crea con AddCall;
// el fan-out solo corre al crear semanas.
func (s *BillingService) AddPhone(ctx context.Context, userID uuid.UUID, number string) (*model.PhoneModel, error) {
	if number == "" {
		return nil, ErrMissingField
	}
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&model.PhoneModel{}).
		Where("phone_number = ?", number).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateNumber
	}

	phone := &model.PhoneModel{PhoneUserID: userID, PhoneNumber: number, PhoneActive: true}
	if err := db.Create(phone).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, err
	}
	return phone, nil
}

// UpdatePhone cambia número y/o dueño.
func (s *BillingService) UpdatePhone(ctx context.Context, phoneID uuid.UUID, number *string, userID *uuid.UUID) (*model.PhoneModel, error) {
	db := s.DB.WithContext(ctx)

	var phone model.PhoneModel
	if err := db.First(&phone, "phone_id = ?", phoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("phone %s: %w", phoneID, ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]any{}
	if number != nil && *number != phone.PhoneNumber {
		var count int64
		if err := db.Model(&model.PhoneModel{}).
			Where("phone_number = ? AND phone_id <> ?", *number, phoneID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateNumber
		}
		updates["phone_number"] = *number
	}
	if userID != nil {
		updates["phone_user_id"] = *userID
	}

	if len(updates) > 0 {
		if err := db.Model(&phone).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicateNumber
			}
			return nil, err
		}
	}
	return &phone, nil
}

// SetPhoneActive prende/apaga la elegibilidad para el fan-out semanal.
// Baja blanda: el teléfono conserva su historial.
func (s *BillingService) SetPhoneActive(ctx context.Context, phoneID uuid.UUID, active bool) (*model.PhoneModel, error) {
	db := s.DB.WithContext(ctx)

	var phone model.PhoneModel
	if err := db.First(&phone, "phone_id = ?", phoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("phone %s: %w", phoneID, ErrNotFound)
		}
		return nil, err
	}
	if err := db.Model(&phone).Update("phone_active", active).Error; err != nil {
		return nil, err
	}
	return &phone, nil
}

// DeletePhone es la baja dura y solo procede con cero llamadas asociadas:
// el staff tiene que limpiar las llamadas primero, a propósito, para que
// nadie destruya historial de facturación sin darse cuenta.
func (s *BillingService) DeletePhone(ctx context.Context, phoneID uuid.UUID) error {
	db := s.DB.WithContext(ctx)

	var phone model.PhoneModel
	if err := db.First(&phone, "phone_id = ?", phoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("phone %s: %w", phoneID, ErrNotFound)
		}
		return err
	}

	var calls int64
	if err := db.Model(&model.CallModel{}).
		Where("call_phone_id = ?", phoneID).
		Count(&calls).Error; err != nil {
		return err
	}
	if calls > 0 {
		return ErrHasCalls
	}

	return db.Delete(&phone).Error
}
