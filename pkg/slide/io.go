package slide

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalSlide converts a slide to indented JSON bytes.
func MarshalSlide(s Slide) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSlideFile writes a slide to a JSON file with 0644 permissions.
func WriteSlideFile(s Slide, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeJSON(f, s)
}

// ReadSlideFile reads a JSON file and returns the decoded slide.
// The slide's layout is validated on load, so corrupted or hand-edited
// geometry is rejected here rather than surfacing mid-edit.
func ReadSlideFile(path string) (Slide, error) {
	f, err := os.Open(path)
	if err != nil {
		return Slide{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSlide(f)
}

// ReadSlide decodes a JSON slide from an io.Reader and validates its layout.
func ReadSlide(r io.Reader) (Slide, error) {
	var s Slide
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Slide{}, fmt.Errorf("decode: %w", err)
	}
	if err := s.Layout.Validate(); err != nil {
		return Slide{}, fmt.Errorf("layout of slide %s: %w", s.ID, err)
	}
	return s, nil
}

// MarshalDeck converts a deck to indented JSON bytes.
func MarshalDeck(d Deck) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDeckFile writes a deck to a JSON file with 0644 permissions.
func WriteDeckFile(d Deck, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeJSON(f, d)
}

// ReadDeckFile reads a JSON file and returns the decoded deck.
// Every slide's layout is validated on load.
func ReadDeckFile(path string) (Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return Deck{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDeck(f)
}

// ReadDeck decodes a JSON deck from an io.Reader and validates each
// slide's layout.
func ReadDeck(r io.Reader) (Deck, error) {
	var d Deck
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Deck{}, fmt.Errorf("decode: %w", err)
	}
	for _, s := range d.Slides {
		if err := s.Layout.Validate(); err != nil {
			return Deck{}, fmt.Errorf("layout of slide %s: %w", s.ID, err)
		}
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
