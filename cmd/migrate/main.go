package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"backoffice/internal/config"
	"backoffice/internal/db"

	"github.com/jmoiron/sqlx"
)

const downMarker = "-- +migrate Down"

func main() {
	down := flag.Bool("down", false, "roll back the most recently applied migration")
	flag.Parse()

	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (filename text primary key, applied_at timestamptz default now())`); err != nil {
		log.Fatalf("failed to ensure schema_migrations: %v", err)
	}

	if *down {
		if err := rollbackLast(database, cfg.MigrationsDir); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		return
	}
	if err := applyPending(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}

func applyPending(database *sqlx.DB, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		filename := filepath.Base(file)
		var exists bool
		if err := database.Get(&exists, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, filename); err != nil {
			return fmt.Errorf("read migration state: %w", err)
		}
		if exists {
			continue
		}
		up, _, err := readSections(file)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		if err := runStatements(database, up); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		if _, err := database.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
			return fmt.Errorf("record %s: %w", filename, err)
		}
		fmt.Printf("applied %s\n", filename)
	}
	return nil
}

func rollbackLast(database *sqlx.DB, dir string) error {
	var filename string
	if err := database.Get(&filename, `SELECT filename FROM schema_migrations ORDER BY applied_at DESC, filename DESC LIMIT 1`); err != nil {
		return fmt.Errorf("nothing to roll back: %w", err)
	}
	_, downSQL, err := readSections(filepath.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if strings.TrimSpace(downSQL) == "" {
		return fmt.Errorf("%s has no down section", filename)
	}
	if err := runStatements(database, downSQL); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if _, err := database.Exec(`DELETE FROM schema_migrations WHERE filename = $1`, filename); err != nil {
		return fmt.Errorf("unrecord %s: %w", filename, err)
	}
	fmt.Printf("rolled back %s\n", filename)
	return nil
}

func readSections(path string) (up, down string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	up, down, _ = strings.Cut(string(content), downMarker)
	return up, down, nil
}

func runStatements(database *sqlx.DB, sqlText string) error {
	for _, stmt := range splitStatements(sqlText) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// splitStatements breaks a migration section on semicolons, dropping comment
// lines. Semicolons inside string literals are not handled; the schema does
// not need them.
func splitStatements(sqlText string) []string {
	var statements []string
	var current strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(sqlText))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		current.WriteString(line)
		current.WriteRune('\n')
		if strings.Contains(line, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	return statements
}
