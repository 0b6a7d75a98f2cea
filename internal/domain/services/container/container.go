package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/cache"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/config"
)

const sweepSchedule = "@every 5m"

// ServiceContainer wires every service and the directory cache
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger

	cache  cache.Store
	memory *cache.MemoryStore
	redis  *cache.RedisStore

	jwtService       *services.JWTService
	packageService   *services.PackageService
	batchService     *services.BatchDeliveryService
	directoryService *services.DirectoryService
	userService      *services.UserService
	pairingService   *services.PairingService

	mu sync.RWMutex
}

// NewServiceContainer builds the cache backend and the services on top of db
func NewServiceContainer(db *gorm.DB, cfg *config.Config, log *zap.Logger) (*ServiceContainer, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &ServiceContainer{
		db:     db,
		config: cfg,
		log:    log,
	}
	c.initializeCache()
	if err := c.initializeServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// initializeCache selects redis when enabled and reachable, the in-process store otherwise
func (c *ServiceContainer) initializeCache() {
	if c.config.RedisEnabled {
		store := cache.NewRedisStore(c.config.GetRedisAddr(), c.config.RedisDB, "encomendas:")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.log.Warn("redis unreachable, using in-process directory cache",
				zap.String("addr", c.config.GetRedisAddr()),
				zap.Error(err))
			_ = store.Close()
		} else {
			c.redis = store
			c.cache = store
			return
		}
	}

	c.memory = cache.NewMemoryStore()
	c.cache = c.memory
}

func (c *ServiceContainer) initializeServices() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config.JWTSecretKey, c.config.JWTTTL)
	c.packageService = services.NewPackageService(c.db, c.log.Named("packages"))
	c.batchService = services.NewBatchDeliveryService(c.packageService, c.log.Named("batch"))
	c.directoryService = services.NewDirectoryService(c.db, c.cache, services.DirectoryOptions{
		CacheTTL:        c.config.DirectoryCacheTTL,
		SearchLimit:     c.config.SearchLimit,
		SuggestionLimit: c.config.SuggestionLimit,
	}, c.log.Named("directory"))
	c.userService = services.NewUserService(c.db, c.log.Named("users"))

	pairing, err := services.NewPairingService(c.config.PairingAddress, c.config.ServerPort, c.log.Named("pairing"))
	if err != nil {
		return err
	}
	c.pairingService = pairing
	return nil
}

// StartBackground starts the in-process cache sweeper; redis expires keys on its own
func (c *ServiceContainer) StartBackground() error {
	if c.memory == nil {
		return nil
	}
	return c.memory.StartSweeper(sweepSchedule, c.log.Named("cache"))
}

// Close stops background jobs and releases the cache backend
func (c *ServiceContainer) Close() {
	if c.memory != nil {
		c.memory.StopSweeper()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warn("closing redis", zap.Error(err))
		}
	}
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Config returns the loaded configuration
func (c *ServiceContainer) Config() *config.Config {
	return c.config
}

// Logger returns the root logger
func (c *ServiceContainer) Logger() *zap.Logger {
	return c.log
}

// Packages returns the package store
func (c *ServiceContainer) Packages() services.InterfacePackageService {
	return c.packageService
}

// Batch returns the batch delivery coordinator
func (c *ServiceContainer) Batch() *services.BatchDeliveryService {
	return c.batchService
}

// Directory returns the resident/porter directory
func (c *ServiceContainer) Directory() services.InterfaceDirectoryService {
	return c.directoryService
}

// Users returns the staff account service
func (c *ServiceContainer) Users() services.InterfaceUserService {
	return c.userService
}

// JWT returns the token service
func (c *ServiceContainer) JWT() services.InterfaceJWTService {
	return c.jwtService
}

// Pairing returns the pairing service
func (c *ServiceContainer) Pairing() services.InterfacePairingService {
	return c.pairingService
}

// Cache returns the shared cache backend
func (c *ServiceContainer) Cache() cache.Store {
	return c.cache
}
