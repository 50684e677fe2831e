package models

import "time"

// Document is the metadata of a supporting file attached to an application.
// Payload bytes live in object storage under StorageKey; the service only
// hands out presigned URLs.
type Document struct {
	ID            int64
	ApplicationID int64
	FileName      string
	StorageKey    string
	CreatedAt     time.Time
}
