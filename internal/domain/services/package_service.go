package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

// InterfacePackageService defines the package store. It is the only writer of package rows.
type InterfacePackageService interface {
	Create(ctx context.Context, in CreatePackageInput) (uint, error)
	FetchPending(ctx context.Context) ([]models.PackageView, error)
	FetchByID(ctx context.Context, id uint) (*models.PackageView, error)
	Update(ctx context.Context, id uint, in UpdatePackageInput) error
	Deliver(ctx context.Context, id uint, in DeliveryInput) error
	ListDelivered(ctx context.Context, from, to time.Time, limit int) ([]models.PackageView, error)
	CountByResident(ctx context.Context, residentID uint) (int64, error)
}

// CreatePackageInput carries the receivable fields of a new package
type CreatePackageInput struct {
	ResidentID   uint
	ReceivedByID uint
	Quantity     int
	ReceivedAt   time.Time
	Notes        string
}

// UpdatePackageInput overwrites the receivable fields of a package
type UpdatePackageInput = CreatePackageInput

// DeliveryInput carries the metadata of one delivery
type DeliveryInput struct {
	DeliveredByID uint
	DeliveredAt   time.Time
	RetrievedBy   string
	Notes         string
}

// PackageService stores packages and owns the Received -> Delivered transition
type PackageService struct {
	DB  *gorm.DB
	Log *zap.Logger
	now func() time.Time
}

// NewPackageService creates a new package store
func NewPackageService(db *gorm.DB, log *zap.Logger) *PackageService {
	return &PackageService{
		DB:  db,
		Log: log,
		now: time.Now,
	}
}

// 1 Create registers a package in state Received
func (s *PackageService) Create(ctx context.Context, in CreatePackageInput) (uint, error) {
	if err := s.validateReceivable(&in); err != nil {
		return 0, err
	}

	db := s.DB.WithContext(ctx)
	if err := s.checkReferences(db, in.ResidentID, in.ReceivedByID); err != nil {
		return 0, err
	}

	pkg := &models.Package{
		ResidentID:   in.ResidentID,
		ReceivedByID: in.ReceivedByID,
		ReceivedAt:   in.ReceivedAt,
		Quantity:     in.Quantity,
		Notes:        strings.TrimSpace(in.Notes),
		Status:       models.PackageStatusReceived,
	}
	if err := db.Create(pkg).Error; err != nil {
		return 0, dbError("create package", err)
	}

	s.Log.Info("package received",
		zap.Uint("package_id", pkg.ID),
		zap.Uint("resident_id", pkg.ResidentID),
		zap.Uint("received_by", pkg.ReceivedByID),
		zap.Int("quantity", pkg.Quantity))
	return pkg.ID, nil
}

// 2 FetchPending lists packages still at the desk, most recently received first
func (s *PackageService) FetchPending(ctx context.Context) ([]models.PackageView, error) {
	views := make([]models.PackageView, 0)
	err := s.viewQuery(ctx).
		Where("packages.status = ?", models.PackageStatusReceived).
		Order("packages.received_at DESC").
		Order("packages.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, dbError("fetch pending packages", err)
	}
	return views, nil
}

// 3 FetchByID returns one package with its display names
func (s *PackageService) FetchByID(ctx context.Context, id uint) (*models.PackageView, error) {
	var views []models.PackageView
	err := s.viewQuery(ctx).
		Where("packages.id = ?", id).
		Limit(1).
		Scan(&views).Error
	if err != nil {
		return nil, dbError("fetch package", err)
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	return &views[0], nil
}

// 4 Update overwrites the receivable fields; status and delivery fields are never touched
func (s *PackageService) Update(ctx context.Context, id uint, in UpdatePackageInput) error {
	if err := s.validateReceivable(&in); err != nil {
		return err
	}

	db := s.DB.WithContext(ctx)
	if err := s.checkReferences(db, in.ResidentID, in.ReceivedByID); err != nil {
		return err
	}

	result := db.Model(&models.Package{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resident_id":    in.ResidentID,
			"received_by_id": in.ReceivedByID,
			"quantity":       in.Quantity,
			"received_at":    in.ReceivedAt,
			"notes":          strings.TrimSpace(in.Notes),
		})
	if result.Error != nil {
		return dbError("update package", result.Error)
	}
	if result.RowsAffected == 0 {
		exists, err := s.exists(db, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// 5 Deliver moves a package from Received to Delivered.
// The transition is a single conditional UPDATE, so among concurrent callers at most one
// succeeds; the others get ErrAlreadyDelivered and the row keeps the winner's metadata.
func (s *PackageService) Deliver(ctx context.Context, id uint, in DeliveryInput) error {
	retrievedBy := strings.TrimSpace(in.RetrievedBy)
	if retrievedBy == "" {
		return validationError("retrieved-by name is required")
	}
	if in.DeliveredAt.IsZero() {
		return validationError("delivery time is required")
	}

	db := s.DB.WithContext(ctx)
	if err := s.requireActivePorter(db, in.DeliveredByID); err != nil {
		return err
	}

	result := db.Model(&models.Package{}).
		Where("id = ? AND status <> ?", id, models.PackageStatusDelivered).
		Updates(map[string]interface{}{
			"status":          models.PackageStatusDelivered,
			"delivered_at":    in.DeliveredAt,
			"delivered_by_id": in.DeliveredByID,
			"retrieved_by":    retrievedBy,
			"delivery_notes":  strings.TrimSpace(in.Notes),
		})
	if result.Error != nil {
		return dbError("deliver package", result.Error)
	}

	if result.RowsAffected == 0 {
		exists, err := s.exists(db, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrAlreadyDelivered
	}

	s.Log.Info("package delivered",
		zap.Uint("package_id", id),
		zap.Uint("delivered_by", in.DeliveredByID),
		zap.String("retrieved_by", retrievedBy))
	return nil
}

// 6 ListDelivered lists packages delivered within [from, to], most recent first
func (s *PackageService) ListDelivered(ctx context.Context, from, to time.Time, limit int) ([]models.PackageView, error) {
	query := s.viewQuery(ctx).Where("packages.status = ?", models.PackageStatusDelivered)
	if !from.IsZero() {
		query = query.Where("packages.delivered_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("packages.delivered_at <= ?", to)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	views := make([]models.PackageView, 0)
	if err := query.Order("packages.delivered_at DESC").Order("packages.id DESC").Scan(&views).Error; err != nil {
		return nil, dbError("list delivered packages", err)
	}
	return views, nil
}

// 7 CountByResident returns how many packages a resident has received, delivered or not
func (s *PackageService) CountByResident(ctx context.Context, residentID uint) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Package{}).Where("resident_id = ?", residentID).Count(&count).Error
	if err != nil {
		return 0, dbError("count resident packages", err)
	}
	return count, nil
}

func (s *PackageService) viewQuery(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("packages").
		Select(`packages.id, packages.resident_id, residents.name AS resident_name,
			residents.street, residents.number, residents.block, residents.unit,
			packages.received_by_id, receivers.full_name AS received_by_name,
			packages.received_at, packages.quantity, packages.notes, packages.status,
			packages.delivered_at, packages.delivered_by_id, deliverers.full_name AS delivered_by_name,
			packages.retrieved_by, packages.delivery_notes`).
		Joins("LEFT JOIN residents ON residents.id = packages.resident_id").
		Joins("LEFT JOIN users AS receivers ON receivers.id = packages.received_by_id").
		Joins("LEFT JOIN users AS deliverers ON deliverers.id = packages.delivered_by_id")
}

func (s *PackageService) validateReceivable(in *CreatePackageInput) error {
	if in.Quantity < 1 {
		return validationError("quantity must be at least 1")
	}
	if in.ResidentID == 0 {
		return validationError("resident is required")
	}
	if in.ReceivedByID == 0 {
		return validationError("receiving porter is required")
	}
	if in.ReceivedAt.IsZero() {
		in.ReceivedAt = s.now()
	}
	return nil
}

func (s *PackageService) checkReferences(db *gorm.DB, residentID, porterID uint) error {
	var count int64
	if err := db.Model(&models.Resident{}).Where("id = ?", residentID).Count(&count).Error; err != nil {
		return dbError("check resident", err)
	}
	if count == 0 {
		return referenceError("resident %d does not exist", residentID)
	}
	return s.requireActivePorter(db, porterID)
}

func (s *PackageService) requireActivePorter(db *gorm.DB, userID uint) error {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return referenceError("user %d does not exist", userID)
		}
		return dbError("check porter", err)
	}
	if !user.IsActivePorter() {
		return referenceError("user %d is not an active porter", userID)
	}
	return nil
}

func (s *PackageService) exists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Package{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, dbError("check package", err)
	}
	return count > 0, nil
}
