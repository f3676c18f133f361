package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/errors"
)

// docHandle is a document opened from a JSON file or the configured store.
type docHandle struct {
	doc   *document.Document
	save  func(ctx context.Context) error
	close func() error
}

// openDocument loads the document named by arg. With fromStore, arg is a
// document ID in the configured store; otherwise it is a file path.
func (c *CLI) openDocument(ctx context.Context, arg string, fromStore bool) (*docHandle, error) {
	if !fromStore {
		doc, err := document.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		return &docHandle{
			doc:   doc,
			save:  func(context.Context) error { return document.WriteFile(arg, doc) },
			close: func() error { return nil },
		}, nil
	}

	store, err := c.newStore(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := store.Get(ctx, arg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &docHandle{
		doc:   doc,
		save:  func(ctx context.Context) error { return store.Put(ctx, doc) },
		close: store.Close,
	}, nil
}

// applySelection replaces the stored selection when ids are given and checks
// that each of them exists.
func applySelection(doc *document.Document, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if err := errors.ValidateLayerID(id); err != nil {
			return err
		}
		if _, ok := doc.LayerByID(id); !ok {
			return errors.New(errors.ErrCodeNotFound, "layer %s not found in %s", id, doc.Name)
		}
	}
	doc.Select(ids...)
	return nil
}

// readData reads pasted table data from path, or stdin for "-".
func (c *CLI) readData(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "-" {
		b, err := io.ReadAll(c.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read data: %w", err)
	}
	return string(b), nil
}
