package document

import "context"

// Store persists documents.
type Store interface {
	// Get loads a document. It returns an error wrapping ErrNotFound if the
	// document does not exist.
	Get(ctx context.Context, id string) (*Document, error)

	// Put creates or replaces a document.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}
