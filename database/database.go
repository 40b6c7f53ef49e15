package database

import (
	"database/sql"
	"time"

	"github.com/civicpulse/campaign/config"
	_ "github.com/mattn/go-sqlite3"
)

func Open(cfg config.Config) (db *sql.DB, err error) {
	// _foreign_keys applies per connection, so it goes on the DSN rather
	// than a one-off PRAGMA; survey_answer relies on ON DELETE CASCADE
	db, err = sql.Open("sqlite3", cfg.DBUrl+"?_foreign_keys=on")
	if err != nil {
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return
	}

	return
}
