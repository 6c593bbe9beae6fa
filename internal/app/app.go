package app

import (
	"context"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/lahorisamosa/lahorisamosa/config"
	"github.com/lahorisamosa/lahorisamosa/internal/cart"
	"github.com/lahorisamosa/lahorisamosa/internal/checkout"
	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
)

// BuildVersion is stamped by the release build (-ldflags "-X ...BuildVersion=v1.2.3").
var BuildVersion = "dev"

func Version() string {
	return "lahorisamosa " + BuildVersion
}

type Application struct {
	appConfig     *config.AppConfig
	gormDB        *gorm.DB
	boltDB        *bolt.DB
	sched         *cron.Cron
	configManager *ConfigManager
	bus           *realtime.Bus
	mailSender    *mailer.Mailer
	dispatcher    *mailer.Dispatcher
	carts         *cart.Store
	staging       *checkout.Staging
	checkoutSvc   *checkout.Service
	monitor       *SystemMonitor
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ checkout.Settings = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}

	// Build logger with file rotation if enabled
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
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	// Session-scoped cart and checkout staging live in a local bolt file
	a.boltDB, err = bolt.Open(filepath.Join(cfg.GetDataDir(), "storefront.db"), 0o600,
		&bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		panic(err)
	}
	a.carts, err = cart.NewStore(a.boltDB)
	if err != nil {
		panic(err)
	}
	a.staging, err = checkout.NewStaging(a.boltDB)
	if err != nil {
		panic(err)
	}

	a.bus = realtime.NewBus()
	a.configManager = NewConfigManager(a)
	a.monitor = NewSystemMonitor()

	a.mailSender = mailer.New(cfg.Mailer)
	a.dispatcher, err = mailer.NewDispatcher(a.mailSender, 4)
	if err != nil {
		panic(err)
	}

	a.checkoutSvc = checkout.NewService(
		a.carts,
		a.staging,
		checkout.NewGormOrderRepository(a.gormDB),
		a.mailSender,
		a.bus,
		a,
	)

	// wait for database initialization to complete
	go func() {
		time.Sleep(3 * time.Second)
		a.checkAdmin()
		a.checkSettings()
		a.checkProducts()
	}()

	a.initJob()
}

func (a *Application) MigrateDB(track bool) (err error) {
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// ConfigMgr returns the configuration manager
func (a *Application) ConfigMgr() *ConfigManager {
	return a.configManager
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Bus returns the realtime event bus
func (a *Application) Bus() *realtime.Bus {
	return a.bus
}

// Mailer returns the transactional email relay
func (a *Application) Mailer() *mailer.Mailer {
	return a.mailSender
}

// Dispatcher returns the async notification dispatcher
func (a *Application) Dispatcher() *mailer.Dispatcher {
	return a.dispatcher
}

// Carts returns the session cart store
func (a *Application) Carts() *cart.Store {
	return a.carts
}

// Checkout returns the checkout service
func (a *Application) Checkout() *checkout.Service {
	return a.checkoutSvc
}

// Monitor returns the system usage sampler
func (a *Application) Monitor() *SystemMonitor {
	return a.monitor
}

// Start scheduler job runner
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	a.sched.Start()
	zap.L().Info("background jobs started")
	go func() {
		<-ctx.Done()
		a.sched.Stop()
	}()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.dispatcher != nil {
		a.dispatcher.Release()
	}
	if a.boltDB != nil {
		_ = a.boltDB.Close()
	}
	_ = zap.L().Sync()
}
