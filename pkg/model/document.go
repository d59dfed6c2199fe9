package model

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrDocumentNotFound   = goerr.New("document not found")
	ErrInvalidAccessLevel = goerr.New("invalid access level")
)

type DocumentID string

// NewDocumentID generates a new unique DocumentID
func NewDocumentID() DocumentID {
	return DocumentID(uuid.New().String())
}

// AccessLevel controls which callers may retrieve a document.
// Customers see only public documents; admins see everything.
type AccessLevel string

const (
	AccessPublic  AccessLevel = "public"
	AccessPrivate AccessLevel = "private"
)

// Validate checks if the access level is valid
func (a AccessLevel) Validate() error {
	switch a {
	case AccessPublic, AccessPrivate:
		return nil
	default:
		return goerr.Wrap(ErrInvalidAccessLevel, "unknown access level", goerr.V("access_level", a))
	}
}

// ParseAccessLevel converts a raw string into an AccessLevel.
// Anything other than "public" maps to private.
func ParseAccessLevel(s string) AccessLevel {
	if s == string(AccessPublic) {
		return AccessPublic
	}
	return AccessPrivate
}

// Document is a retrievable knowledge unit. Its embedding vector must have the
// dimensionality configured for the embedding provider; mixing dimensionalities
// in one nearest-neighbor query is undefined.
type Document struct {
	ID          DocumentID         `firestore:"id"`
	Name        string             `firestore:"name"`
	Description string             `firestore:"description"`
	Embedding   firestore.Vector32 `firestore:"embedding"`
	AccessLevel AccessLevel        `firestore:"access_level"`
	CreatedAt   time.Time          `firestore:"created_at"`
}
