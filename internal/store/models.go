package store

import "time"

// SavedArticle is the snapshot taken of an article at save time. It stays
// readable even after the source article is filtered out or gone.
type SavedArticle struct {
	ID         string
	Title      string
	Link       string
	Summary    string
	OriginDate string
	SavedAt    time.Time
}
