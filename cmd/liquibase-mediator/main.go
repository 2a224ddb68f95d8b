package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	mediator "github.com/Metatavu/wso2-liquibase-mediator"
)

const (
	envKeyDriver   = `LIQUIBASE_DRIVER`
	envKeyDbstring = `LIQUIBASE_DBSTRING`
	envKeyUser     = `LIQUIBASE_USER`
	envKeyPassword = `LIQUIBASE_PASSWORD`
)

var (
	flags         = flag.NewFlagSet("liquibase-mediator", flag.ExitOnError)
	driver        = flags.String("driver", "", "database driver (postgres, mysql, sqlite3, mssql, clickhouse, vertica, redshift, tidb, turso)")
	dbstring      = flags.String("url", "", "database connection string")
	user          = flags.String("user", "", "database user")
	password      = flags.String("password", "", "database password")
	changelogPath = flags.String("changelog", "", "path to the changelog XML document")
	contextLabel  = flags.String("context", mediator.DefaultContext, "changeset context label to apply")
	table         = flags.String("table", "", "changelog tracking table name")
	envFile       = flags.String("env-file", "", "load environment variables from this file before reading flags")
)

func main() {
	ctx, stop := newContext()
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newContext() (context.Context, context.CancelFunc) {
	signals := []os.Signal{os.Interrupt}
	if runtime.GOOS != "windows" {
		signals = append(signals, syscall.SIGTERM)
	}
	return signal.NotifyContext(context.Background(), signals...)
}

func run(ctx context.Context, args []string) error {
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	applyEnvDefault(driver, envKeyDriver)
	applyEnvDefault(dbstring, envKeyDbstring)
	applyEnvDefault(user, envKeyUser)
	applyEnvDefault(password, envKeyPassword)

	if *changelogPath == "" {
		return fmt.Errorf("-changelog is required")
	}
	text, err := os.ReadFile(*changelogPath)
	if err != nil {
		return fmt.Errorf("read changelog: %w", err)
	}

	opts := []mediator.RunnerOption{
		mediator.WithContext(*contextLabel),
	}
	if *table != "" {
		opts = append(opts, mediator.WithTablename(*table))
	}
	runner := mediator.NewRunner(opts...)

	outcome, err := runner.Run(ctx, mediator.Request{
		ChangeLog: string(text),
		Driver:    *driver,
		URL:       normalizeDBString(*driver, *dbstring),
		User:      *user,
		Password:  *password,
	})
	if err != nil {
		return err
	}
	if len(outcome.Applied) == 0 {
		log.Printf("no changesets to apply")
		return nil
	}
	for _, res := range outcome.Applied {
		log.Printf("applied changeset %s:%s in %s", res.ID, res.Author, res.Duration)
	}
	return nil
}

func applyEnvDefault(target *string, key string) {
	if *target == "" {
		*target = os.Getenv(key)
	}
}
