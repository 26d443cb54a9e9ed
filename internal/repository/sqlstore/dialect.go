package sqlstore

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Dialect carries the driver name and the statements that differ between
// SQL engines.
type Dialect struct {
	Name        string
	DriverName  string
	CreateTable string
	SelectValue string
	Upsert      string
	Delete      string
}

var (
	MySQL = Dialect{
		Name:       "mysql",
		DriverName: "mysql",
		CreateTable: `CREATE TABLE IF NOT EXISTS records (
	record_key VARCHAR(191) NOT NULL PRIMARY KEY,
	data LONGTEXT NOT NULL,
	updated_at DATETIME(6) NOT NULL
) DEFAULT CHARSET = utf8mb4`,
		SelectValue: `SELECT data FROM records WHERE record_key = ?`,
		Upsert: `INSERT INTO records (record_key, data, updated_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = VALUES(updated_at)`,
		Delete: `DELETE FROM records WHERE record_key = ?`,
	}

	Postgres = Dialect{
		Name:       "postgres",
		DriverName: "postgres",
		CreateTable: `CREATE TABLE IF NOT EXISTS records (
	record_key TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`,
		SelectValue: `SELECT data FROM records WHERE record_key = $1`,
		Upsert: `INSERT INTO records (record_key, data, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (record_key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		Delete: `DELETE FROM records WHERE record_key = $1`,
	}
)

// DialectFor resolves a dialect by driver name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pq":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
}

// normalizeDSN makes sure MySQL connections scan DATETIME columns into
// time.Time. Other dialects pass through unchanged.
func normalizeDSN(d Dialect, dsn string) (string, error) {
	if d.DriverName != MySQL.DriverName {
		return dsn, nil
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
