package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

// FileStore keeps each deck as a JSON document in a directory, named by
// deck ID. Suited to single-user CLI work; no locking across processes.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves a deck by ID.
func (s *FileStore) Get(ctx context.Context, id string) (slide.Deck, error) {
	d, err := slide.ReadDeckFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return slide.Deck{}, ErrNotFound
	}
	if err != nil {
		return slide.Deck{}, err
	}
	return d, nil
}

// Put stores a deck, replacing any existing document.
func (s *FileStore) Put(ctx context.Context, d slide.Deck) error {
	if d.ID == "" {
		return fmt.Errorf("deck has no ID")
	}
	return slide.WriteDeckFile(d, s.path(d.ID))
}

// Delete removes a deck document.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// List returns summaries of all stored decks, sorted by ID.
func (s *FileStore) List(ctx context.Context) ([]DeckInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var infos []DeckInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		d, err := slide.ReadDeckFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			// Skip unreadable documents rather than failing the listing.
			continue
		}
		infos = append(infos, infoOf(d))
	}
	slices.SortFunc(infos, func(a, b DeckInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
