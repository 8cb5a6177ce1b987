// Package models contains database model definitions.
package models

import "time"

// Change is one journal entry of an RRset change sent, or planned, against a zone.
type Change struct {
	ID         uint64    `gorm:"primaryKey"               json:"id"`
	Zone       string    `gorm:"index;size:255;not null" json:"zone"`
	Server     string    `gorm:"size:255"                json:"server"`
	Verb       string    `gorm:"size:16;not null"        json:"verb"`
	APIVersion int       `json:"api_version"`
	DryRun     bool      `json:"dry_run"`
	Payload    string    `gorm:"type:text"               json:"payload"` // JSON patch document
	Error      string    `gorm:"type:text"               json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Failed reports whether the change was rejected or never submitted.
func (c *Change) Failed() bool {
	return c.Error != ""
}
