package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/akshatsri47/credit-card-approval/config"
	"github.com/akshatsri47/credit-card-approval/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the storage collaborator for customers and loans
type Database struct {
	DB *gorm.DB
}

// Connect establishes the database connection and runs migrations
func Connect(cfg *config.Config) (*Database, error) {
	// Build the connection string
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.DBName,
	)

	// Configure the GORM logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Open the connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection error: %v", err)
	}

	// Configure the connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("connection pool error: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Run SQL migrations
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("migration error: %v", err)
	}

	// Run automatic model migration
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto migration error: %v", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// runMigrations applies the SQL migrations from the migrations directory
func runMigrations(cfg *config.Config) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.DBName,
	)

	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("migration init error: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration up error: %v", err)
	}

	return nil
}

// autoMigrate keeps the model schema in sync
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Customer{},
		&models.Loan{},
	)
	if err != nil {
		return fmt.Errorf("auto migration error: %v", err)
	}

	return nil
}

// InsertCustomer persists a new customer and returns it with its assigned id
func (d *Database) InsertCustomer(customer *models.Customer) (*models.Customer, error) {
	if err := d.DB.Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomerByID returns the customer or models.ErrCustomerNotFound
func (d *Database) GetCustomerByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := d.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// GetLoansByCustomerID returns the customer's full loan history as a single
// consistent snapshot, ordered by loan id
func (d *Database) GetLoansByCustomerID(customerID uint) ([]models.Loan, error) {
	var loans []models.Loan
	if err := d.DB.Where("customer_id = ?", customerID).
		Order("loan_id ASC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// GetLoanByID returns the loan with its customer or models.ErrLoanNotFound
func (d *Database) GetLoanByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := d.DB.Preload("Customer").First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// MaxLoanID returns the highest assigned loan id, 0 when there are no loans
func (d *Database) MaxLoanID() (uint, error) {
	var maxID sql.NullInt64
	if err := d.DB.Model(&models.Loan{}).
		Select("MAX(loan_id)").
		Scan(&maxID).Error; err != nil {
		return 0, err
	}
	if !maxID.Valid {
		return 0, nil
	}
	return uint(maxID.Int64), nil
}

// InsertLoan allocates the next loan id and persists the loan. The id read
// and the insert run in one serializable transaction so concurrent creations
// can never allocate the same id.
func (d *Database) InsertLoan(loan *models.Loan) (*models.Loan, error) {
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var maxID sql.NullInt64
		if err := tx.Model(&models.Loan{}).
			Select("MAX(loan_id)").
			Scan(&maxID).Error; err != nil {
			return err
		}

		loan.LoanID = 1
		if maxID.Valid {
			loan.LoanID = uint(maxID.Int64) + 1
		}

		return tx.Create(loan).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	return loan, nil
}
