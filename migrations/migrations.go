package main

import (
	"database/sql"
	"fmt"
	"os"

	"tippspiel/config"

	_ "github.com/lib/pq"
)

func main() {
	log := config.Logger()
	cfg := config.Env()
	db, err := sql.Open("postgres", config.PostgresDSN(
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
	))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	version, err := getMigrationVersion(db)
	if err != nil {
		log.Fatal(err)
	}

	for {
		file, err := os.ReadFile(fmt.Sprintf("migrations/%d.sql", version+1))
		if err != nil {
			log.WithField("version", version).Info("no further migrations")
			return
		}
		err = migrateUp(db, version+1, string(file))
		if err != nil {
			log.WithError(err).WithField("version", version+1).Fatal("migration failed")
		}
		version++
		log.WithField("version", version).Info("migrated")
	}
}

// migrateUp applies one migration and records its version atomically.
func migrateUp(db *sql.DB, version int, statements string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(statements); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("UPDATE migrations SET version = $1", version); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func getMigrationVersion(db *sql.DB) (version int, err error) {
	_, err = db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", config.SchemaName))
	if err != nil {
		return 0, err
	}
	err = db.QueryRow("SELECT version FROM migrations").Scan(&version)
	if err != nil {
		return 0, generateMigrationTable(db)
	}
	return version, nil
}

func generateMigrationTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INT PRIMARY KEY
		);
		INSERT INTO migrations (version) VALUES (0);
	`)
	return err
}
