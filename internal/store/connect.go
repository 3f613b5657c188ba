package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the primary database. A non empty readDSN registers a
// read replica that serves plain queries; writes and locking reads stay on
// the primary.
func Open(dsn, readDSN string, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if readDSN == "" {
		return db, nil
	}

	err = db.Use(dbresolver.Register(dbresolver.Config{
		Replicas:          []gorm.Dialector{postgres.Open(readDSN)},
		Policy:            dbresolver.RandomPolicy{},
		TraceResolverMode: debug,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to register read replica: %w", err)
	}
	return db, nil
}
