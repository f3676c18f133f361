package document

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SUECHART_TEST_MONGO")
	if uri == "" {
		t.Skip("SUECHART_TEST_MONGO not set")
	}

	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "suechart_test"})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close()

	doc := newTestDoc(t)
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	defer s.Delete(ctx, doc.ID)

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got.Layers()) != 3 {
		t.Errorf("layers = %d, want 3", len(got.Layers()))
	}

	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}
