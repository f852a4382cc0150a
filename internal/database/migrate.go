package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var embedded embed.FS

// RunMigrations applies all up migrations to the database at dbPath.
// An empty dir uses the migrations compiled into the binary.
func RunMigrations(dbPath, dir string) error {
	var fsys fs.FS = embedded
	root := "migrations"
	if dir != "" {
		fsys = os.DirFS(dir)
		root = "."
	}
	src, err := iofs.New(fsys, root)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	// The migrate driver closes the connection it is handed.
	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
