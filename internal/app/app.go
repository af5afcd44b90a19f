package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tilazone/tilazone/config"
	"github.com/tilazone/tilazone/internal/cart"
	"github.com/tilazone/tilazone/internal/catalog"
	"github.com/tilazone/tilazone/internal/checkout"
	"github.com/tilazone/tilazone/internal/i18n"
	"github.com/tilazone/tilazone/internal/orders"
	"github.com/tilazone/tilazone/pkg/metrics"
)

// Application wires the storefront components: the catalog repository
// over its configured slot backend, session carts, the order journal,
// the checkout submitter and the background job scheduler.
type Application struct {
	appConfig *config.AppConfig
	boltDB    *bolt.DB
	gormDB    *gorm.DB
	catalog   catalog.Repository
	carts     *cart.Manager
	orderLog  orders.Store
	submitter *checkout.Submitter
	settings  *SettingsManager
	sched     *cron.Cron
	node      *snowflake.Node
}

// Ensure Application implements all interfaces
var _ AppContext = (*Application)(nil)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig   { return a.appConfig }
func (a *Application) Catalog() catalog.Repository { return a.catalog }
func (a *Application) Carts() *cart.Manager        { return a.carts }
func (a *Application) Orders() orders.Store        { return a.orderLog }
func (a *Application) Submitter() *checkout.Submitter {
	return a.submitter
}
func (a *Application) Scheduler() *cron.Cron { return a.sched }
func (a *Application) DB() *gorm.DB          { return a.gormDB }

// OverrideCatalog replaces the catalog repository (used in tests).
func (a *Application) OverrideCatalog(repo catalog.Repository) {
	a.catalog = repo
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := os.MkdirAll(cfg.GetDataDir(), 0o755); err != nil {
		return fmt.Errorf("create workdir: %w", err)
	}

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	a.boltDB, err = bolt.Open(filepath.Join(cfg.GetDataDir(), "storefront.db"), 0o600,
		&bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return fmt.Errorf("open data store: %w", err)
	}

	backend, err := a.openCatalogBackend(cfg)
	if err != nil {
		return err
	}
	a.catalog = catalog.NewStore(backend)

	a.orderLog, err = orders.NewBoltStore(a.boltDB)
	if err != nil {
		return err
	}

	a.settings, err = NewSettingsManager(a.boltDB)
	if err != nil {
		return err
	}

	a.carts = cart.NewManager(time.Duration(cfg.Storefront.CartTTLMinutes) * time.Minute)

	a.node, err = snowflake.NewNode(1)
	if err != nil {
		return fmt.Errorf("init snowflake node: %w", err)
	}

	mailer := checkout.NewMailer(cfg.Smtp, a.settings.StoreInfo(i18n.LangArabic).Email)
	a.submitter = checkout.NewSubmitter(cfg.Storefront.OrderEndpoint, a.node, a.orderLog, mailer)

	a.checkCatalog()
	a.initJob()
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

func (a *Application) openCatalogBackend(cfg *config.AppConfig) (catalog.Backend, error) {
	switch cfg.Database.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Database.Host, cfg.Database.User, cfg.Database.Passwd,
			cfg.Database.Name, cfg.Database.Port)
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.gormDB = gdb
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
		return catalog.NewGormBackend(gdb)
	case "", "bolt":
		return catalog.NewBoltBackend(a.boltDB)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}
}

// checkCatalog forces the first slot access so an empty deployment is
// seeded with the default products at startup rather than on the first
// request.
func (a *Application) checkCatalog() {
	products, err := a.catalog.Load(context.Background())
	if err != nil {
		zap.L().Error("catalog check failed", zap.Error(err))
		return
	}
	zap.L().Info("catalog ready", zap.Int("products", len(products)))
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.boltDB != nil {
		_ = a.boltDB.Close()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
