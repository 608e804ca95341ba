// Package sqlite implementa la persistencia local del carrito sobre un
// archivo SQLite embebido: el análogo del localStorage del widget original.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store conexión SQLite con el esquema del carrito aplicado.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base de datos en la ruta dada y aplica el esquema.
// ":memory:" abre una base en memoria (tests).
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: ruta requerida")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	memory := path == ":memory:"
	if memory {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if memory {
		// Una base en memoria existe por conexión; limitar el pool a una.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return store, nil
}

// DB devuelve la conexión subyacente.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close cierra la base de datos.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cart_records (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`)
	return err
}
