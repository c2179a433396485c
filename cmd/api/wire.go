//go:build wireinject
// +build wireinject

// Wire definitions for the API binary. Run `wire gen ./cmd/api` to produce
// wire_gen.go; main.go keeps an equivalent hand-written chain so the binary
// builds without the generator.
//
// The optional pieces (redis, rabbitmq) are resolved by custom providers:
// Wire wires types, not feature flags, so the nil-when-disabled decisions
// live in the provide* functions below.

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appcustomer "github.com/pkozlowski/bookstore/internal/application/customer"
	appinventory "github.com/pkozlowski/bookstore/internal/application/inventory"
	appreport "github.com/pkozlowski/bookstore/internal/application/report"
	appstaff "github.com/pkozlowski/bookstore/internal/application/staff"
	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/staff"
	"github.com/pkozlowski/bookstore/internal/infrastructure/config"
	"github.com/pkozlowski/bookstore/internal/infrastructure/persistence/mysql"
	"github.com/pkozlowski/bookstore/internal/infrastructure/persistence/redis"
	"github.com/pkozlowski/bookstore/internal/interface/csvio"
	"github.com/pkozlowski/bookstore/internal/interface/http/handler"
	"github.com/pkozlowski/bookstore/internal/interface/http/middleware"
	"github.com/pkozlowski/bookstore/pkg/jwt"
	"github.com/pkozlowski/bookstore/pkg/mq"
)

var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewCustomerRepository,
	mysql.NewPurchaseRepository,
	mysql.NewReportRepository,
	mysql.NewStaffRepository,
	mysql.NewTxManager,
)

var domainSet = wire.NewSet(
	book.NewService,
	customer.NewService,
	staff.NewService,
)

var applicationSet = wire.NewSet(
	appinventory.NewAddBookUseCase,
	appinventory.NewRemoveBookUseCase,
	appinventory.NewAdjustStockUseCase,
	appinventory.NewBuyBookUseCase,
	appcustomer.NewRegisterUseCase,
	appcustomer.NewRemoveUseCase,
	appcustomer.NewFindUseCase,
	appreport.NewQueries,
	appstaff.NewRegisterUseCase,
	appstaff.NewRefreshUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
)

var handlerSet = wire.NewSet(
	csvio.NewBookCSV,
	csvio.NewCustomerCSV,
	handler.NewBookHandler,
	handler.NewPurchaseHandler,
	handler.NewCustomerHandler,
	handler.NewReportHandler,
	handler.NewStaffHandler,
	handler.NewCSVHandler,
	middleware.NewAuthMiddleware,
)

var adapterSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideReportCache,
	provideEventPublisher,
	provideInventoryPublisher,
	provideCustomerPublisher,
	provideStaffSessions,
	provideReportCacheIface,
	provideInventoryTxManager,
	provideCustomerTxManager,
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideReportCache(client *goredis.Client, cfg *config.Config) *redis.ReportCache {
	return redis.NewReportCache(client, cfg.Report.CacheTTL)
}

// provideEventPublisher returns nil when the broker is switched off; the
// consumers treat a nil publisher as "no events".
func provideEventPublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

func provideInventoryPublisher(p *mq.Publisher) appinventory.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

func provideCustomerPublisher(p *mq.Publisher) appcustomer.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

func provideStaffSessions(s *redis.SessionStore) appstaff.SessionStore {
	return s
}

func provideReportCacheIface(c *redis.ReportCache) appreport.Cache {
	return c
}

func provideInventoryTxManager(tm *mysql.TxManager) appinventory.TxManager {
	return tm
}

func provideCustomerTxManager(tm *mysql.TxManager) appcustomer.TxManager {
	return tm
}

// The login and logout use cases both take a bare time.Duration, which Wire
// cannot disambiguate, so they get dedicated providers.
func provideLoginUseCase(staffSvc staff.Service, tokens *jwt.Manager, sessions appstaff.SessionStore, cfg *config.Config) *appstaff.LoginUseCase {
	return appstaff.NewLoginUseCase(staffSvc, tokens, sessions, cfg.JWT.RefreshTokenExpire)
}

func provideLogoutUseCase(sessions appstaff.SessionStore, cfg *config.Config) *appstaff.LogoutUseCase {
	return appstaff.NewLogoutUseCase(sessions, cfg.JWT.AccessTokenExpire)
}

func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	purchaseHandler *handler.PurchaseHandler,
	customerHandler *handler.CustomerHandler,
	reportHandler *handler.ReportHandler,
	staffHandler *handler.StaffHandler,
	csvHandler *handler.CSVHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	registerRoutes(r, bookHandler, purchaseHandler, customerHandler, reportHandler, staffHandler, csvHandler, authMiddleware)
	return r
}

// InitializeApp builds the fully wired Gin engine.
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		adapterSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
