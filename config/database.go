package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const SchemaName = "tippspiel"

func PostgresDSN(host string, port string, user string, password string, dbName string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		host, port, user, password, dbName, SchemaName,
	)
}

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(PostgresDSN(host, port, user, password, dbName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, SchemaName))
	if x.Error != nil {
		return nil, x.Error
	}
	return db, nil
}
