//go:build !no_mysql
// +build !no_mysql

package main

import (
	"log"

	"github.com/go-sql-driver/mysql"
	_ "github.com/ziutek/mymysql/godrv"
)

// normalizeDBString rewrites a mysql DSN to always set parseTime, so
// DATETIME/DATE/TIMESTAMP columns scan into time.Time.
func normalizeDBString(driver, str string) string {
	if driver == "mysql" || driver == "tidb" {
		var err error
		str, err = normalizeMySQLDSN(str)
		if err != nil {
			log.Fatalf("failed to normalize MySQL connection string: %v", err)
		}
	}
	return str
}

func normalizeMySQLDSN(dsn string) (string, error) {
	config, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	config.ParseTime = true
	return config.FormatDSN(), nil
}
