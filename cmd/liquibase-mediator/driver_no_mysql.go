//go:build no_mysql
// +build no_mysql

package main

func normalizeDBString(driver, str string) string {
	return str
}
