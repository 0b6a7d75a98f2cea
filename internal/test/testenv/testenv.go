// Package testenv boots the full gateway on a throwaway sqlite database for tests
package testenv

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/app/routes"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services/container"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/config"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/database"
)

// Password is the password of every seeded account
const Password = "secret123"

// Env is a running gateway with its dependencies
type Env struct {
	Config    *config.Config
	DB        *gorm.DB
	Container *container.ServiceContainer
	Router    *gin.Engine
}

// New opens a fresh database under dir and wires the router. Callers own Close.
func New(dir string) (*Env, error) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		EnvType:         "LOCAL",
		DBDriver:        "sqlite",
		DBPath:          filepath.Join(dir, "gateway.db"),
		DBMigrationMode: "auto",
		ServerPort:      "3000",
		PairingAddress:  "192.168.0.15",
		RateLimitRPS:    10000,
		RateLimitBurst:  10000,
		JWTSecretKey:    "test-secret",
		JWTTTL:          time.Hour,
		Timezone:        "America/Sao_Paulo",
		ClientTimeout:   5 * time.Second,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := zap.NewNop()
	pool, err := database.NewConnectionPool(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode, log); err != nil {
		return nil, err
	}

	c, err := container.NewServiceContainer(pool.GetDB(), cfg, log)
	if err != nil {
		return nil, err
	}

	return &Env{
		Config:    cfg,
		DB:        pool.GetDB(),
		Container: c,
		Router:    routes.SetupRouter(c),
	}, nil
}

// NewT is New bound to a test's lifetime
func NewT(t testing.TB) *Env {
	t.Helper()

	env, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(env.Close)
	return env
}

// Close releases the container and the database
func (e *Env) Close() {
	e.Container.Close()
	if sqlDB, err := e.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// CreateUser adds an account with Password
func (e *Env) CreateUser(login, name string, level models.AccessLevel) (*models.User, error) {
	return e.Container.Users().CreateUser(context.Background(), services.UserInput{
		Login:       login,
		FullName:    name,
		AccessLevel: level,
		Password:    Password,
	})
}

// CreateResident adds a resident with a complete address
func (e *Env) CreateResident(name string) (*models.Resident, error) {
	return e.Container.Directory().CreateResident(context.Background(), services.ResidentInput{
		Name:   name,
		Street: "Rua das Flores",
		Number: "120",
		Block:  "B",
		Unit:   "34",
	})
}

// ReceivePackage registers a pending package
func (e *Env) ReceivePackage(residentID, porterID uint) (uint, error) {
	return e.Container.Packages().Create(context.Background(), services.CreatePackageInput{
		ResidentID:   residentID,
		ReceivedByID: porterID,
		Quantity:     1,
		ReceivedAt:   time.Now(),
	})
}

// Token issues an admin surface token for user
func (e *Env) Token(user *models.User) (string, error) {
	token, _, err := e.Container.JWT().GenerateToken(user)
	return token, err
}
