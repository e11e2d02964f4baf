package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sahilchouksey/career-compass-api/config"
	"github.com/sahilchouksey/career-compass-api/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is what the HTTP layer needs from the database
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
	DB() *gorm.DB
	Driver() string
}

// GORMStore is the Storage backed by GORM on PostgreSQL or SQLite
type GORMStore struct {
	db     *gorm.DB
	driver string
	log    *zap.Logger
}

// StartGORM opens the database selected by DB_DRIVER: PostgreSQL by default, or a SQLite
// file at SQLITE_PATH for local work.
func StartGORM(log *zap.Logger) (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	if getEnv.DB_DRIVER == "sqlite" {
		store, err := OpenSQLite(getEnv.SQLITE_PATH, gormLogger)
		if err != nil {
			log.Error("unable to open SQLite database", zap.String("path", getEnv.SQLITE_PATH), zap.Error(err))
			return nil, err
		}
		store.log = log
		log.Info("connected to SQLite database", zap.String("path", getEnv.SQLITE_PATH))
		return store, nil
	}

	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
		NowFunc:                utcNow,
	})
	if err != nil {
		log.Error("unable to connect to PostgreSQL", zap.Error(err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("connected to PostgreSQL database", zap.String("host", getEnv.DB_HOST), zap.String("db", getEnv.DB_NAME))

	return &GORMStore{db: db, driver: "postgres", log: log}, nil
}

// OpenSQLite opens a SQLite database through the pure-Go driver. ":memory:" gives a
// private in-memory database, which tests use.
func OpenSQLite(path string, gormLogger logger.Interface) (*GORMStore, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger, NowFunc: utcNow})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; an in-memory database also exists only per connection
	sqlDB.SetMaxOpenConns(1)

	return &GORMStore{db: db, driver: "sqlite", log: zap.NewNop()}, nil
}

// utcNow keeps timestamps comparable across drivers; SQLite stores them as text
func utcNow() time.Time {
	return time.Now().UTC()
}

// Models lists every table the service owns, in migration order
func Models() []interface{} {
	return []interface{}{
		// Users & auth
		&model.User{},
		&model.JWTTokenBlacklist{},
		&model.UserActivity{},

		// Directory
		&model.Location{},
		&model.University{},
		&model.Company{},
		&model.Competition{},
		&model.MarketplaceItem{},
		&model.BlogPost{},
		&model.Resource{},
		&model.Link{},
		&model.LinkComment{},
		&model.AlumniAssociation{},

		// Careers & learning
		&model.Career{},
		&model.Course{},

		// Assessments
		&model.AssessmentType{},
		&model.AssessmentQuestion{},
		&model.UserAssessmentAttempt{},
		&model.UserAssessmentResponse{},

		// Analysis audit & jobs
		&model.CareerFitSnapshot{},
		&model.CronJobLog{},
	}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	s.log.Info("running AutoMigrate", zap.String("driver", s.driver))

	if err := s.db.AutoMigrate(Models()...); err != nil {
		s.log.Error("AutoMigrate failed", zap.Error(err))
		return err
	}

	s.log.Info("AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	s.log.Info("closing database connection", zap.String("driver", s.driver))
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the GORM handle for services and handlers
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// Driver returns "postgres" or "sqlite"
func (s *GORMStore) Driver() string {
	return s.driver
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
