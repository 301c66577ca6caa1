// connection.go
//
// Citenote: manuscripts, papers and citations with session authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of citenote.
// citenote is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// citenote is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with citenote.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"fmt"
	"time"

	glebarez "github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/yashodhanketkar/citenote/internal/config"
	"github.com/yashodhanketkar/citenote/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// credentials selects the account a pool connects with
type credentials struct {
	user     string
	password string
	limit    int
	label    string
}

// Connect establishes the records connection (manuscripts, papers, citations)
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return open(cfg, log, credentials{
		user:     cfg.DBAppUser,
		password: cfg.DBAppPassword,
		limit:    cfg.DBAppConnectionLimit,
		label:    "records",
	})
}

// ConnectUser establishes the accounts connection (with different credentials)
func ConnectUser(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return open(cfg, log, credentials{
		user:     cfg.DBUser,
		password: cfg.DBPassword,
		limit:    cfg.DBConnectionLimit,
		label:    "accounts",
	})
}

// Dialector returns the gorm dialector for the configured DB_TYPE
func Dialector(cfg *config.Config, user, password string) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := mysqldriver.NewConfig()
		dsn.User = user
		dsn.Passwd = password
		dsn.Net = "tcp"
		dsn.Addr = cfg.DBHost + ":" + cfg.DBPort
		dsn.DBName = cfg.DBDatabase
		dsn.ParseTime = true
		dsn.Params = map[string]string{"charset": "utf8mb4"}
		return mysql.Open(dsn.FormatDSN()), nil

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			user,
			password,
			cfg.DBDatabase,
			cfg.DBPort,
		)
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite, DBDatabase is the file path; both pools share it
		return sqlite.Open(cfg.DBDatabase), nil

	case "sqlite-nocgo":
		return glebarez.Open(cfg.DBDatabase), nil

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			user,
			password,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		return sqlserver.Open(dsn), nil
	}

	return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
}

// GormConfig is shared by every pool; duplicate keys surface as gorm.ErrDuplicatedKey
func GormConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(zap.NewStdLog(log), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func open(cfg *config.Config, log *zap.Logger, creds credentials) (*gorm.DB, error) {
	dialector, err := Dialector(cfg, creds.user, creds.password)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", creds.label, err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(creds.limit)
	sqlDB.SetMaxIdleConns(creds.limit / 2)

	log.Info("connected to database",
		zap.String("pool", creds.label),
		zap.String("type", cfg.DBType),
		zap.String("database", cfg.DBDatabase),
	)

	return db, nil
}

// Models lists every migrated model, in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.Manuscript{},
		&models.Paper{},
		&models.ManuscriptPaper{},
		&models.Citation{},
		&models.User{},
	}
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Reset drops every table and migrates again
func Reset(db *gorm.DB) error {
	all := Models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return AutoMigrate(db)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
