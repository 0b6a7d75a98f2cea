package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/pkg/utils"
)

// InterfaceUserService defines staff account management
type InterfaceUserService interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error)
	CreateUser(ctx context.Context, in UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, id uint, in UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, id uint) (softDisabled bool, err error)
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
	Bootstrap(ctx context.Context, in UserInput) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// UserFilter narrows a listing; zero values match everything
type UserFilter struct {
	AccessLevel models.AccessLevel
	Status      models.UserStatus
}

// UserInput carries the editable fields of a staff account.
// An empty Password on update keeps the current hash.
type UserInput struct {
	Login       string
	FullName    string
	Email       string
	AccessLevel models.AccessLevel
	Status      models.UserStatus
	Password    string
}

const minPasswordLength = 6

// UserService manages staff accounts
type UserService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, log *zap.Logger) *UserService {
	return &UserService{
		DB:  db,
		Log: log,
	}
}

// 1 GetUser returns one account
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.getUser(s.DB.WithContext(ctx), id)
}

// 2 ListUsers lists accounts ordered by full name
func (s *UserService) ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error) {
	users := make([]models.User, 0)
	query := s.DB.WithContext(ctx).Model(&models.User{})
	if filter.AccessLevel != "" {
		query = query.Where("access_level = ?", filter.AccessLevel)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Order("full_name ASC").Find(&users).Error; err != nil {
		return nil, dbError("list users", err)
	}
	return users, nil
}

// 3 CreateUser registers an account with a bcrypt password hash
func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if err := in.normalize(true); err != nil {
		return nil, err
	}
	return s.create(s.DB.WithContext(ctx), in)
}

// 4 UpdateUser overwrites an account. An actor cannot deactivate itself or drop its own admin role.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id uint, in UserInput) (*models.User, error) {
	if err := in.normalize(false); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	user, err := s.getUser(db, id)
	if err != nil {
		return nil, err
	}
	if actorID == id && (in.Status != models.UserStatusActive || in.AccessLevel != user.AccessLevel) {
		return nil, ErrSelfModification
	}

	if in.Login != user.Login {
		if err := s.ensureLoginFree(db, in.Login, id); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"login":        in.Login,
		"full_name":    in.FullName,
		"email":        in.Email,
		"access_level": in.AccessLevel,
		"status":       in.Status,
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}

	if err := db.Model(user).Updates(updates).Error; err != nil {
		return nil, dbError("update user", err)
	}

	s.Log.Info("user updated", zap.Uint("user_id", id), zap.Uint("actor_id", actorID))
	return s.getUser(db, id)
}

// 5 DeleteUser removes an account, or marks it inactive when packages reference it.
// The returned bool reports a soft disable.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id uint) (bool, error) {
	if actorID == id {
		return false, ErrSelfModification
	}

	db := s.DB.WithContext(ctx)
	if _, err := s.getUser(db, id); err != nil {
		return false, err
	}

	var refs int64
	err := db.Model(&models.Package{}).
		Where("received_by_id = ? OR delivered_by_id = ?", id, id).
		Count(&refs).Error
	if err != nil {
		return false, dbError("count user references", err)
	}

	if refs > 0 {
		if err := db.Model(&models.User{}).Where("id = ?", id).Update("status", models.UserStatusInactive).Error; err != nil {
			return false, dbError("disable user", err)
		}
		s.Log.Info("user soft-disabled", zap.Uint("user_id", id), zap.Int64("package_refs", refs))
		return true, nil
	}

	if err := db.Delete(&models.User{}, id).Error; err != nil {
		return false, dbError("delete user", err)
	}
	s.Log.Info("user deleted", zap.Uint("user_id", id), zap.Uint("actor_id", actorID))
	return false, nil
}

// 6 Authenticate checks a login and password against an active account
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("login = ?", strings.TrimSpace(login)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, dbError("authenticate", err)
	}

	if user.Status != models.UserStatusActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// 7 Bootstrap creates the first admin account. It succeeds only while no account exists.
func (s *UserService) Bootstrap(ctx context.Context, in UserInput) (*models.User, error) {
	in.AccessLevel = models.AccessLevelAdmin
	in.Status = models.UserStatusActive
	if err := in.normalize(true); err != nil {
		return nil, err
	}

	var created *models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return dbError("count users", err)
		}
		if count > 0 {
			return ErrBootstrapClosed
		}

		user, err := s.create(tx, in)
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Warn("bootstrap admin account created",
		zap.Uint("user_id", created.ID),
		zap.String("login", created.Login))
	return created, nil
}

// 8 Count returns how many accounts exist
func (s *UserService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, dbError("count users", err)
	}
	return count, nil
}

func (s *UserService) create(db *gorm.DB, in UserInput) (*models.User, error) {
	if err := s.ensureLoginFree(db, in.Login, 0); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Login:        in.Login,
		FullName:     in.FullName,
		Email:        in.Email,
		AccessLevel:  in.AccessLevel,
		Status:       in.Status,
		PasswordHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, dbError("create user", err)
	}

	s.Log.Info("user created",
		zap.Uint("user_id", user.ID),
		zap.String("access_level", string(user.AccessLevel)))
	return user, nil
}

func (s *UserService) getUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, dbError("get user", err)
	}
	return &user, nil
}

func (s *UserService) ensureLoginFree(db *gorm.DB, login string, exceptID uint) error {
	var count int64
	if err := db.Model(&models.User{}).Where("login = ? AND id <> ?", login, exceptID).Count(&count).Error; err != nil {
		return dbError("check login", err)
	}
	if count > 0 {
		return ErrDuplicateLogin
	}
	return nil
}

func (in *UserInput) normalize(requirePassword bool) error {
	in.Login = strings.TrimSpace(in.Login)
	in.FullName = strings.Join(strings.Fields(in.FullName), " ")
	in.Email = strings.TrimSpace(in.Email)

	if in.Login == "" {
		return validationError("login is required")
	}
	if in.FullName == "" {
		return validationError("full name is required")
	}
	if in.AccessLevel == "" {
		in.AccessLevel = models.AccessLevelPorter
	}
	if !in.AccessLevel.Valid() {
		return validationError("unknown access level %q", in.AccessLevel)
	}
	if in.Status == "" {
		in.Status = models.UserStatusActive
	}
	if !in.Status.Valid() {
		return validationError("unknown status %q", in.Status)
	}
	if requirePassword || in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return validationError("password must have at least %d characters", minPasswordLength)
		}
	}
	return nil
}
