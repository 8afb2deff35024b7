package domain

import "time"

// Version is an immutable snapshot of a workspace calendar.
type Version struct {
	ID                string
	ProjectID         string
	OwnerID           string
	VersionNumber     string
	Notes             string
	CreatedAt         time.Time
	PublishedAt       *time.Time
	IsPublished       bool
	IsLatestPublished bool
	Calendar          *Calendar
}

// Workspace is the single mutable calendar of a project.
type Workspace struct {
	ProjectID     string
	OwnerID       string
	BaseVersionID string
	LastModified  time.Time
	IsDraft       bool
	Calendar      *Calendar
}

// AccessGrant maps a public code and token to a project.
type AccessGrant struct {
	Code         string
	Token        string
	OwnerID      string
	ProjectID    string
	CreatedAt    time.Time
	ViewCount    int
	LastAccessed *time.Time
}
