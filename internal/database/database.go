package database

import (
	"fmt"
	"strings"

	"greengrass/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ChangeChannel is the Postgres NOTIFY channel fed by the change triggers.
const ChangeChannel = "store_changes"

type Database struct {
	DB       *gorm.DB
	postgres bool
}

func New(databaseURL string, logLevel string) (*Database, error) {
	var db *gorm.DB
	var err error

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(logLevel)),
	}

	isPostgres := !strings.HasPrefix(databaseURL, "sqlite://")
	if !isPostgres {
		// SQLite for development and tests
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db, postgres: isPostgres}, nil
}

// Migrate creates or updates all tables, and on Postgres installs the
// triggers that publish row changes on ChangeChannel.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	if !d.postgres {
		return nil
	}

	if err := d.DB.Exec(notifyFunctionSQL).Error; err != nil {
		return fmt.Errorf("failed to create notify function: %w", err)
	}
	for _, table := range watchedTables {
		if err := d.DB.Exec(fmt.Sprintf(notifyTriggerSQL, table)).Error; err != nil {
			return fmt.Errorf("failed to create notify trigger on %s: %w", table, err)
		}
	}

	return nil
}

func (d *Database) IsPostgres() bool {
	return d.postgres
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "error", "fatal":
		return logger.Error
	default:
		return logger.Warn
	}
}

var watchedTables = []string{"site_settings", "categories", "products", "profiles", "orders"}

const notifyFunctionSQL = `
CREATE OR REPLACE FUNCTION notify_store_change() RETURNS trigger AS $$
DECLARE
	rec RECORD;
BEGIN
	IF TG_OP = 'DELETE' THEN
		rec := OLD;
	ELSE
		rec := NEW;
	END IF;

	PERFORM pg_notify('` + ChangeChannel + `', json_build_object(
		'table', TG_TABLE_NAME,
		'action', lower(TG_OP),
		'id', to_jsonb(rec)->>'id',
		'key', to_jsonb(rec)->>'setting_key'
	)::text);

	RETURN NULL;
END;
$$ LANGUAGE plpgsql;
`

const notifyTriggerSQL = `
DROP TRIGGER IF EXISTS %[1]s_notify_change ON %[1]s;
CREATE TRIGGER %[1]s_notify_change
	AFTER INSERT OR UPDATE OR DELETE ON %[1]s
	FOR EACH ROW EXECUTE FUNCTION notify_store_change();
`
