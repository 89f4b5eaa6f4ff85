package services

import (
	"car_configurator_server/database"
	"car_configurator_server/store"
	"car_configurator_server/store/memory"
	"car_configurator_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	UserService    *UserService
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	CatalogService *CatalogService
	QuoteService   *QuoteService
	ContentService *ContentService
}

// Stores is the persistence the services run on.
type Stores struct {
	Catalog CatalogStore
	Quotes  QuoteStore
	Users   UserStore
	Content ContentStore
	DB      Pinger
	// Blacklist is used for logout when the Redis cache is disabled. May be nil.
	Blacklist TokenBlacklist
}

// NewServiceManager wires every service onto Postgres.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	return NewServiceManagerWithStores(logger, cfg, Stores{
		Catalog: store.NewCatalogStore(db),
		Quotes:  store.NewQuoteStore(db),
		Users:   store.NewUserStore(db),
		Content: store.NewContentStore(db),
		DB:      dbPinger{db},
	})
}

// NewInMemoryServiceManager runs on process memory with the demo catalog. Nothing survives a restart.
func NewInMemoryServiceManager(logger *gecho.Logger, cfg *structs.Config) *ServiceManager {
	catalog := memory.NewSeededCatalog()
	users := memory.NewUsers()
	return NewServiceManagerWithStores(logger, cfg, Stores{
		Catalog:   catalog,
		Quotes:    memory.NewQuotes(catalog, users),
		Users:     users,
		Content:   memory.NewContent(),
		DB:        memory.Pinger{},
		Blacklist: memory.NewBlacklist(),
	})
}

func NewServiceManagerWithStores(logger *gecho.Logger, cfg *structs.Config, stores Stores) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)

	var catalogCache CatalogCache
	blacklist := stores.Blacklist
	if cacheService.Enabled() {
		catalogCache = cacheService
		blacklist = cacheService
	}

	return &ServiceManager{
		AuthService:    NewAuthService(logger, cfg, stores.Users, blacklist, emailService),
		UserService:    NewUserService(logger, stores.Users),
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  NewHealthService(logger, stores.DB, cacheService),
		CatalogService: NewCatalogService(logger, stores.Catalog, catalogCache),
		QuoteService:   NewQuoteService(logger, cfg, stores.Quotes, stores.Catalog, stores.Users, emailService),
		ContentService: NewContentService(logger, stores.Content),
	}
}
