// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// UploadedFile is a single row of the ownership registry: it binds a public
// file identifier to its owner and to the opaque key of the stored blob.
type UploadedFile struct {
	// FileID is the server-assigned identifier exposed to clients.
	FileID int64 `json:"id"`

	// FileName is the display name supplied by the client at upload time.
	FileName string `json:"file_name"`

	// UserID is the owner of the file. Immutable after creation.
	UserID int64 `json:"-"`

	// StorageKey is the blob store handle. It is distinct from FileID and
	// is never derived from it.
	StorageKey string `json:"-"`

	// EncryptionKey is per-file key material. It is generated on upload and
	// persisted, but file contents are stored as received.
	EncryptionKey string `json:"-"`

	// Size is the number of bytes written to the blob store.
	Size int64 `json:"-"`

	// ContentType is the MIME type reported by the client, used when the
	// file is streamed back.
	ContentType string `json:"-"`

	// CreatedAt is the upload timestamp.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the UploadedFile model.
func (f UploadedFile) TableName() string {
	return "uploaded_files"
}
