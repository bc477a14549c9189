package db

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/habitfeed/migrations"
	"gorm.io/gorm"
)

var migrationFileName = regexp.MustCompile(`^(\d+)_[\w-]+\.sql$`)
var addColumnStatement = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)

type schemaMigration struct {
	version string
	order   int
	file    string
	body    string
}

// schemaMigrator applies the embedded SQL files of one dialect directory in version order.
// Every applied file is recorded in schema_migrations so a boot only runs what is new.
type schemaMigrator struct {
	database *gorm.DB
	dialect  string
	files    fs.FS
}

func migrateSchema(database *gorm.DB) error {
	return newSchemaMigrator(database, embeddedmigrations.Files).migrate()
}

func newSchemaMigrator(database *gorm.DB, files fs.FS) *schemaMigrator {
	return &schemaMigrator{
		database: database,
		dialect:  database.Dialector.Name(),
		files:    files,
	}
}

func (migrator *schemaMigrator) migrate() error {
	if err := migrator.ensureLedger(); err != nil {
		return err
	}

	migrations, err := loadSchemaMigrations(migrator.files, migrator.dialect)
	if err != nil {
		return err
	}
	applied, err := migrator.appliedVersions()
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.version] {
			continue
		}
		if err := migrator.apply(migration); err != nil {
			return err
		}
	}
	return nil
}

func (migrator *schemaMigrator) ensureLedger() error {
	timestampType := "DATETIME"
	if migrator.dialect == DriverPostgres {
		timestampType = "TIMESTAMPTZ"
	}

	ledgerSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, timestampType)
	if err := migrator.database.Exec(ledgerSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func (migrator *schemaMigrator) appliedVersions() (map[string]bool, error) {
	var versions []string
	if err := migrator.database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

func (migrator *schemaMigrator) apply(migration schemaMigration) error {
	statements := splitSQLStatements(migration.body)
	if len(statements) == 0 {
		return errors.New("migration " + migration.file + " has no SQL statements")
	}

	return migrator.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			skip, err := migrator.columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.file, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.file, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.version,
			migration.file,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.file, err)
		}
		return nil
	})
}

// columnAlreadyAdded lets ADD COLUMN statements run against databases that gained the column
// before the ledger existed.
func (migrator *schemaMigrator) columnAlreadyAdded(tx *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatement.FindStringSubmatch(statement)
	if len(matches) != 3 {
		return false, nil
	}
	return migrator.columnExists(tx, unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]))
}

func (migrator *schemaMigrator) columnExists(tx *gorm.DB, table string, column string) (bool, error) {
	var columns []string
	var err error
	switch migrator.dialect {
	case DriverPostgres:
		err = tx.Raw(
			`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?`,
			table,
		).Scan(&columns).Error
	default:
		var rows []struct {
			Name string `gorm:"column:name"`
		}
		query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
		err = tx.Raw(query).Scan(&rows).Error
		for _, row := range rows {
			columns = append(columns, row.Name)
		}
	}
	if err != nil {
		return false, fmt.Errorf("load columns of %s: %w", table, err)
	}

	for _, name := range columns {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			return true, nil
		}
	}
	return false, nil
}

// loadSchemaMigrations reads <dialect>/NNN_name.sql files ordered by their numeric prefix.
func loadSchemaMigrations(files fs.FS, dialect string) ([]schemaMigration, error) {
	entries, err := fs.ReadDir(files, dialect)
	if err != nil {
		return nil, fmt.Errorf("read %s migrations: %w", dialect, err)
	}

	migrations := make([]schemaMigration, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for _, entry := range entries {
		matches := migrationFileName.FindStringSubmatch(entry.Name())
		if entry.IsDir() || matches == nil {
			continue
		}

		order, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version of %s: %w", entry.Name(), err)
		}
		if previous, ok := seen[order]; ok {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", order, previous, entry.Name())
		}
		seen[order] = entry.Name()

		body, err := fs.ReadFile(files, path.Join(dialect, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, schemaMigration{
			version: matches[1],
			order:   order,
			file:    entry.Name(),
			body:    string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].order < migrations[j].order
	})
	return migrations, nil
}

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
