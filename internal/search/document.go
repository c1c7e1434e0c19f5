// Package search provides full-text search over the library using Bleve.
package search

import (
	"strings"

	"github.com/booktrackapp/booktrack/internal/domain"
)

// BookDocument is the indexed representation of a book. Note text is
// denormalized into a single field so a query can hit either the book's
// metadata or anything the reader wrote about it.
type BookDocument struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// DocumentFromBook builds the index document for a book.
func DocumentFromBook(b *domain.Book) *BookDocument {
	doc := &BookDocument{
		ID:     b.ID,
		Title:  b.Title,
		Status: string(b.Status),
	}
	if b.Author != nil {
		doc.Author = *b.Author
	}
	if b.Genre != nil {
		doc.Genre = *b.Genre
	}
	if len(b.Notes) > 0 {
		texts := make([]string, len(b.Notes))
		for i, n := range b.Notes {
			texts[i] = n.Text
		}
		doc.Notes = strings.Join(texts, "\n")
	}
	return doc
}

// ToMap converts the document to a map so field names match the mapping.
func (d *BookDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":     d.ID,
		"title":  d.Title,
		"status": d.Status,
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	return m
}
