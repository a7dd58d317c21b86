package store

import (
	"context"
	"errors"
	"testing"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

// storeUnderTest exercises the Store contract shared by all backends.
// Mongo is excluded: it needs a live server and is covered by the same
// contract via integration environments.
func storeUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func sampleDeck(id, title string, slides int) slide.Deck {
	d := slide.Deck{ID: id, Title: title}
	for i := 0; i < slides; i++ {
		d.Slides = append(d.Slides, slide.NewSlide("slide"))
	}
	return d
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer s.Close(ctx)

			d := sampleDeck("d1", "Biology", 2)
			if err := s.Put(ctx, d); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := s.Get(ctx, "d1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ID != "d1" || got.Title != "Biology" || len(got.Slides) != 2 {
				t.Errorf("Get = %q/%q with %d slides", got.ID, got.Title, len(got.Slides))
			}
		})
	}
}

func TestStoreGetAbsent(t *testing.T) {
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer s.Close(ctx)

			if _, err := s.Get(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(ghost) = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStorePutReplaces(t *testing.T) {
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer s.Close(ctx)

			if err := s.Put(ctx, sampleDeck("d1", "v1", 1)); err != nil {
				t.Fatal(err)
			}
			if err := s.Put(ctx, sampleDeck("d1", "v2", 3)); err != nil {
				t.Fatal(err)
			}

			got, err := s.Get(ctx, "d1")
			if err != nil {
				t.Fatal(err)
			}
			if got.Title != "v2" || len(got.Slides) != 3 {
				t.Errorf("Get after replace = %q with %d slides", got.Title, len(got.Slides))
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer s.Close(ctx)

			if err := s.Put(ctx, sampleDeck("d1", "t", 0)); err != nil {
				t.Fatal(err)
			}
			if err := s.Delete(ctx, "d1"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete = %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, "d1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Delete = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer s.Close(ctx)

			if err := s.Put(ctx, sampleDeck("b", "second", 1)); err != nil {
				t.Fatal(err)
			}
			if err := s.Put(ctx, sampleDeck("a", "first", 2)); err != nil {
				t.Fatal(err)
			}

			infos, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(infos) != 2 {
				t.Fatalf("List = %d decks, want 2", len(infos))
			}
			// Sorted by ID for deterministic output.
			if infos[0].ID != "a" || infos[1].ID != "b" {
				t.Errorf("List order = %q, %q", infos[0].ID, infos[1].ID)
			}
			if infos[1].SlideCount != 1 || infos[0].SlideCount != 2 {
				t.Errorf("slide counts = %d, %d", infos[0].SlideCount, infos[1].SlideCount)
			}
		})
	}
}
