package persistence

import (
	"database/sql"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

type DatabaseConfig struct {
	DriverType string
	DriverArgs string
}

// ParseDatabaseConfigFromEnv reads DATABASE_DRIVER (default mysql) and
// DATABASE_URL, e.g. "root:root@(127.0.0.1:3306)/flowdesk?charset=utf8mb4&parseTime=True&loc=Local".
func ParseDatabaseConfigFromEnv() (*DatabaseConfig, error) {
	driverType := os.Getenv("DATABASE_DRIVER")
	if driverType == "" {
		driverType = "mysql"
	}
	driverArgs := os.Getenv("DATABASE_URL")
	if driverArgs == "" {
		return nil, errors.New("environment variable DATABASE_URL is not set")
	}
	return &DatabaseConfig{DriverType: driverType, DriverArgs: driverArgs}, nil
}

// PrepareMysqlDatabase creates the database named in driverArgs when absent.
func PrepareMysqlDatabase(driverArgs string) error {
	urlSepIndex := strings.LastIndex(driverArgs, "/")
	if urlSepIndex < 0 {
		return errors.Errorf("invalid mysql connection string '%s'", driverArgs)
	}
	argsSepIndex := strings.Index(driverArgs[urlSepIndex:], "?")
	databaseName := driverArgs[urlSepIndex+1:]
	if argsSepIndex >= 0 {
		databaseName = driverArgs[urlSepIndex+1 : urlSepIndex+argsSepIndex]
	}

	db, err := sql.Open("mysql", driverArgs[0:urlSepIndex+1])
	if err != nil {
		return errors.Wrap(err, "connect mysql server")
	}
	defer db.Close()
	_, err = db.Exec("CREATE DATABASE IF NOT EXISTS `" + databaseName + "` CHARACTER SET utf8mb4")
	if err != nil {
		return errors.Wrapf(err, "create database %s", databaseName)
	}
	return nil
}
