package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	KeyMusicVolume   = "music_volume"
	KeyEffectsVolume = "effects_volume"

	DefaultVolume = 1.0
)

const schema = `CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is a small key-value table in a sqlite file.
type Store struct {
	db *sql.DB
}

// Open opens the settings database at path, creating the table if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoPath
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", filepath.Clean(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored value for key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Volumes returns the music and effects volumes. Missing or unparsable
// values read as the default.
func (s *Store) Volumes(ctx context.Context) (float64, float64, error) {
	music, err := s.volume(ctx, KeyMusicVolume)
	if err != nil {
		return DefaultVolume, DefaultVolume, err
	}
	effects, err := s.volume(ctx, KeyEffectsVolume)
	if err != nil {
		return DefaultVolume, DefaultVolume, err
	}
	return music, effects, nil
}

func (s *Store) SetMusicVolume(ctx context.Context, v float64) error {
	return s.setVolume(ctx, KeyMusicVolume, v)
}

func (s *Store) SetEffectsVolume(ctx context.Context, v float64) error {
	return s.setVolume(ctx, KeyEffectsVolume, v)
}

func (s *Store) volume(ctx context.Context, key string) (float64, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return DefaultVolume, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultVolume, nil
	}
	return Clamp(v), nil
}

func (s *Store) setVolume(ctx context.Context, key string, v float64) error {
	return s.Set(ctx, key, strconv.FormatFloat(Clamp(v), 'f', -1, 64))
}

// Clamp limits a volume to [0,1].
func Clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
