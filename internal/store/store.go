package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const idPrefixLen = 50

// Store persists reader state: the theme preference and the ordered list of
// saved articles.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS saved_articles (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT UNIQUE NOT NULL,
			title       TEXT NOT NULL,
			link        TEXT NOT NULL,
			summary     TEXT NOT NULL DEFAULT '',
			origin_date TEXT NOT NULL,
			saved_at    DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// ArticleID derives the deterministic id for an article: origin date plus
// the title truncated to a fixed prefix, with everything outside
// [a-zA-Z0-9-] replaced by a dash. An empty title still yields a valid id.
func ArticleID(title, originDate string) string {
	runes := []rune(title)
	if len(runes) > idPrefixLen {
		runes = runes[:idPrefixLen]
	}
	raw := originDate + "-" + string(runes)

	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}

// Toggle saves the article if it is not saved, or removes it if it is.
// It reports whether the article is saved after the call.
func (s *Store) Toggle(title, link, summary, originDate string) (bool, error) {
	id := ArticleID(title, originDate)

	saved, err := s.Saved(id)
	if err != nil {
		return false, err
	}
	if saved {
		if err := s.Remove(id); err != nil {
			return false, err
		}
		return false, nil
	}

	_, err = s.writeDB.Exec(`
		INSERT INTO saved_articles (id, title, link, summary, origin_date, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, title, link, summary, originDate, time.Now())
	if err != nil {
		return false, fmt.Errorf("saving article %s: %w", id, err)
	}
	return true, nil
}

// Saved reports whether an article with the given id is in the store.
func (s *Store) Saved(id string) (bool, error) {
	var n int
	err := s.readDB.QueryRow("SELECT COUNT(*) FROM saved_articles WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking saved state: %w", err)
	}
	return n > 0, nil
}

// List returns all saved articles in insertion order.
func (s *Store) List() ([]SavedArticle, error) {
	rows, err := s.readDB.Query(`
		SELECT id, title, link, summary, origin_date, saved_at
		FROM saved_articles ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying saved articles: %w", err)
	}
	defer rows.Close()

	var out []SavedArticle
	for rows.Next() {
		var a SavedArticle
		if err := rows.Scan(&a.ID, &a.Title, &a.Link, &a.Summary, &a.OriginDate, &a.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning saved article: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Remove deletes a saved article by id, whether or not the source article
// is currently rendered anywhere.
func (s *Store) Remove(id string) error {
	_, err := s.writeDB.Exec("DELETE FROM saved_articles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("removing saved article %s: %w", id, err)
	}
	return nil
}

// Clear deletes every saved article.
func (s *Store) Clear() error {
	_, err := s.writeDB.Exec("DELETE FROM saved_articles")
	return err
}

// Count returns the number of saved articles, for the badge display.
func (s *Store) Count() (int, error) {
	var n int
	err := s.readDB.QueryRow("SELECT COUNT(*) FROM saved_articles").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting saved articles: %w", err)
	}
	return n, nil
}

// Theme returns the persisted theme preference, defaulting to "light".
func (s *Store) Theme() string {
	var value string
	err := s.readDB.QueryRow("SELECT value FROM meta WHERE key = 'theme'").Scan(&value)
	if err != nil || (value != "light" && value != "dark") {
		return "light"
	}
	return value
}

// SetTheme persists the theme preference. Last write wins.
func (s *Store) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("unknown theme %q", theme)
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES ('theme', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, theme)
	return err
}
