//go:build !no_turso
// +build !no_turso

package main

import (
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)
