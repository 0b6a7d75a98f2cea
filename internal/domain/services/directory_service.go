package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/cache"
)

const residentListKey = "directory:residents"

// placeholderAddress fills address fields the mobile intake did not supply
const placeholderAddress = "-"

// InterfaceDirectoryService defines resident and porter lookups plus resident maintenance
type InterfaceDirectoryService interface {
	SearchResidents(ctx context.Context, term string) ([]models.Resident, error)
	SearchActivePorters(ctx context.Context, term string) ([]models.User, error)
	ResolveOrCreateResident(ctx context.Context, name string, hints AddressHints) (uint, bool, error)
	ResolveActivePorter(ctx context.Context, id uint, name string) (*models.User, error)
	ListResidents(ctx context.Context) ([]models.Resident, error)
	SuggestResidents(ctx context.Context, query string) ([]models.ResidentSuggestion, error)

	GetResident(ctx context.Context, id uint) (*models.Resident, error)
	CreateResident(ctx context.Context, in ResidentInput) (*models.Resident, error)
	UpdateResident(ctx context.Context, id uint, in ResidentInput) (*models.Resident, error)
	DeleteResident(ctx context.Context, id uint) error
	InvalidateResidents(ctx context.Context)
}

// AddressHints are the best-effort address fields sent along with a mobile intake
type AddressHints struct {
	Street string
	Number string
	Block  string
	Unit   string
	Phone  string
}

// DirectoryOptions tunes list sizes and cache lifetime
type DirectoryOptions struct {
	CacheTTL        time.Duration
	SearchLimit     int
	SuggestionLimit int
}

// DirectoryService resolves residents and porters. It owns the resident listing cache
// and invalidates it on every resident write.
type DirectoryService struct {
	DB      *gorm.DB
	Cache   cache.Store
	Options DirectoryOptions
	Log     *zap.Logger

	// serializes resolve-or-create so concurrent intakes of one new name yield one row
	provisionMu sync.Mutex
}

// NewDirectoryService creates a new directory
func NewDirectoryService(db *gorm.DB, store cache.Store, opts DirectoryOptions, log *zap.Logger) *DirectoryService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 10
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = 8
	}
	return &DirectoryService{
		DB:      db,
		Cache:   store,
		Options: opts,
		Log:     log,
	}
}

// 1 SearchResidents matches a case-insensitive substring of the name, ordered by name
func (s *DirectoryService) SearchResidents(ctx context.Context, term string) ([]models.Resident, error) {
	residents := make([]models.Resident, 0)
	query := s.DB.WithContext(ctx).Model(&models.Resident{})
	if term = strings.TrimSpace(term); term != "" {
		query = query.Where("name_key LIKE ?", likePattern(term))
	}
	if err := query.Order("name ASC").Limit(s.Options.SearchLimit).Find(&residents).Error; err != nil {
		return nil, dbError("search residents", err)
	}
	return residents, nil
}

// 2 SearchActivePorters matches active porters by full name or login, ordered by name
func (s *DirectoryService) SearchActivePorters(ctx context.Context, term string) ([]models.User, error) {
	users := make([]models.User, 0)
	query := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("status = ? AND access_level = ?", models.UserStatusActive, models.AccessLevelPorter)
	if term = strings.TrimSpace(term); term != "" {
		pattern := likePattern(term)
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(login) LIKE ?", pattern, pattern)
	}
	if err := query.Order("full_name ASC").Limit(s.Options.SearchLimit).Find(&users).Error; err != nil {
		return nil, dbError("search porters", err)
	}
	return users, nil
}

// 3 ResolveOrCreateResident returns the resident whose name matches exactly (then by folded name key),
// creating one with best-effort address fields when none does. The bool reports a creation.
func (s *DirectoryService) ResolveOrCreateResident(ctx context.Context, name string, hints AddressHints) (uint, bool, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return 0, false, validationError("resident name is required")
	}

	s.provisionMu.Lock()
	defer s.provisionMu.Unlock()

	db := s.DB.WithContext(ctx)
	if id, err := s.findResidentByName(db, name); err != nil || id != 0 {
		return id, false, err
	}

	resident := &models.Resident{
		Name:   name,
		Street: orPlaceholder(hints.Street),
		Number: orPlaceholder(hints.Number),
		Block:  strings.TrimSpace(hints.Block),
		Unit:   strings.TrimSpace(hints.Unit),
		Phone:  strings.TrimSpace(hints.Phone),
		Notes:  "Cadastrado automaticamente pelo aplicativo",
	}
	if err := db.Create(resident).Error; err != nil {
		return 0, false, dbError("provision resident", err)
	}
	s.InvalidateResidents(ctx)

	s.Log.Info("resident auto-provisioned",
		zap.Uint("resident_id", resident.ID),
		zap.String("name", resident.Name))
	return resident.ID, true, nil
}

// 4 ResolveActivePorter finds an active porter by id, or by exact (case-insensitive) name or login when id is zero
func (s *DirectoryService) ResolveActivePorter(ctx context.Context, id uint, name string) (*models.User, error) {
	query := s.DB.WithContext(ctx).
		Where("status = ? AND access_level = ?", models.UserStatusActive, models.AccessLevelPorter)

	switch {
	case id != 0:
		query = query.Where("id = ?", id)
	case strings.TrimSpace(name) != "":
		lowered := strings.ToLower(strings.TrimSpace(name))
		query = query.Where("LOWER(full_name) = ? OR LOWER(login) = ?", lowered, lowered)
	default:
		return nil, validationError("porter is required")
	}

	var user models.User
	if err := query.Order("id ASC").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, referenceError("no active porter matches %q", name)
		}
		return nil, dbError("resolve porter", err)
	}
	return &user, nil
}

// 5 ListResidents returns every resident ordered by name, served from the cache when fresh
func (s *DirectoryService) ListResidents(ctx context.Context) ([]models.Resident, error) {
	var residents []models.Resident
	err := s.Cache.Get(ctx, residentListKey, &residents)
	if err == nil {
		return residents, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.Log.Warn("directory cache read failed", zap.Error(err))
	}

	residents = make([]models.Resident, 0)
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&residents).Error; err != nil {
		return nil, dbError("list residents", err)
	}

	if err := s.Cache.Set(ctx, residentListKey, residents, s.Options.CacheTTL); err != nil {
		s.Log.Warn("directory cache write failed", zap.Error(err))
	}
	return residents, nil
}

// 6 SuggestResidents ranks matching resident names by how many packages they have received
func (s *DirectoryService) SuggestResidents(ctx context.Context, query string) ([]models.ResidentSuggestion, error) {
	suggestions := make([]models.ResidentSuggestion, 0)
	q := s.DB.WithContext(ctx).
		Table("residents").
		Select("residents.id, residents.name, residents.block, residents.unit, COUNT(packages.id) AS package_count").
		Joins("LEFT JOIN packages ON packages.resident_id = residents.id")
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("residents.name_key LIKE ?", likePattern(query))
	}

	err := q.Group("residents.id, residents.name, residents.block, residents.unit").
		Order("package_count DESC").
		Order("residents.name ASC").
		Limit(s.Options.SuggestionLimit).
		Scan(&suggestions).Error
	if err != nil {
		return nil, dbError("suggest residents", err)
	}
	return suggestions, nil
}

// InvalidateResidents drops the cached resident listing
func (s *DirectoryService) InvalidateResidents(ctx context.Context) {
	if err := s.Cache.Delete(ctx, residentListKey); err != nil {
		s.Log.Warn("directory cache invalidation failed", zap.Error(err))
	}
}

func (s *DirectoryService) findResidentByName(db *gorm.DB, name string) (uint, error) {
	var resident models.Resident
	err := db.Where("name = ?", name).Order("id ASC").First(&resident).Error
	if err == nil {
		return resident.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, dbError("find resident", err)
	}

	err = db.Where("name_key = ?", models.NameKey(name)).Order("id ASC").First(&resident).Error
	if err == nil {
		return resident.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, dbError("find resident", err)
	}
	return 0, nil
}

func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

func orPlaceholder(value string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return placeholderAddress
}
