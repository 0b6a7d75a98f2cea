package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

// ResidentInput carries the editable fields of a resident
type ResidentInput struct {
	Name   string
	Street string
	Number string
	Block  string
	Unit   string
	Phone  string
	Notes  string
}

func (in *ResidentInput) normalize() error {
	in.Name = strings.Join(strings.Fields(in.Name), " ")
	in.Street = strings.TrimSpace(in.Street)
	in.Number = strings.TrimSpace(in.Number)
	in.Block = strings.TrimSpace(in.Block)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.Name == "" {
		return validationError("resident name is required")
	}
	if in.Street == "" || in.Number == "" {
		return validationError("street and number are required")
	}
	return nil
}

// 7 GetResident returns one resident
func (s *DirectoryService) GetResident(ctx context.Context, id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.WithContext(ctx).First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, dbError("get resident", err)
	}
	return &resident, nil
}

// 8 CreateResident registers a resident
func (s *DirectoryService) CreateResident(ctx context.Context, in ResidentInput) (*models.Resident, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	resident := &models.Resident{
		Name:   in.Name,
		Street: in.Street,
		Number: in.Number,
		Block:  in.Block,
		Unit:   in.Unit,
		Phone:  in.Phone,
		Notes:  in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(resident).Error; err != nil {
		return nil, dbError("create resident", err)
	}
	s.InvalidateResidents(ctx)

	s.Log.Info("resident created", zap.Uint("resident_id", resident.ID))
	return resident, nil
}

// 9 UpdateResident overwrites every editable field
func (s *DirectoryService) UpdateResident(ctx context.Context, id uint, in ResidentInput) (*models.Resident, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	resident, err := s.GetResident(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Model(resident).Updates(map[string]interface{}{
		"name":     in.Name,
		"name_key": models.NameKey(in.Name),
		"street":   in.Street,
		"number":   in.Number,
		"block":    in.Block,
		"unit":     in.Unit,
		"phone":    in.Phone,
		"notes":    in.Notes,
	}).Error
	if err != nil {
		return nil, dbError("update resident", err)
	}
	s.InvalidateResidents(ctx)

	return s.GetResident(ctx, id)
}

// 10 DeleteResident removes a resident that has no packages
func (s *DirectoryService) DeleteResident(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)

	if _, err := s.GetResident(ctx, id); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Package{}).Where("resident_id = ?", id).Count(&count).Error; err != nil {
		return dbError("count resident packages", err)
	}
	if count > 0 {
		return ErrResidentInUse
	}

	if err := db.Delete(&models.Resident{}, id).Error; err != nil {
		return dbError("delete resident", err)
	}
	s.InvalidateResidents(ctx)

	s.Log.Info("resident deleted", zap.Uint("resident_id", id))
	return nil
}
