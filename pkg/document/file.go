package document

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/suechart/pkg/errors"
)

// FileStore keeps each document as a JSON file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store in dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get loads the document with the given ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Document, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	doc, err := ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return doc, err
}

// Put writes doc to disk.
func (s *FileStore) Put(ctx context.Context, doc *Document) error {
	path, err := s.path(doc.ID)
	if err != nil {
		return err
	}
	return WriteFile(path, doc)
}

// Delete removes the document file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close does nothing for file stores.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(id string) (string, error) {
	if err := errors.ValidateLayerID(id); err != nil {
		return "", err
	}
	if filepath.Base(id) != id || id == "." || id == ".." {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid document id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// ReadFile decodes a document from a JSON file.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}

// WriteFile encodes doc as indented JSON at path.
func WriteFile(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
