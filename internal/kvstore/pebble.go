package kvstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
)

// Pebble stores values in a Pebble database directory.
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens (creating if needed) the database directory at path.
func OpenPebble(path string) (*Pebble, error) {
	if path == "" {
		return nil, errors.New("kvstore: pebble path is empty")
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("kvstore: %s exists and is not a directory", path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: ensure pebble dir: %w", err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("kvstore: open pebble: %w", err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Contains(key string) (bool, error) {
	_, err := p.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (p *Pebble) Get(key string) ([]byte, error) {
	value, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kvstore: get %s: %w", key, err)
	}
	defer closer.Close()
	return append([]byte(nil), value...), nil
}

func (p *Pebble) Set(key string, value []byte) error {
	if err := p.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("kvstore: set %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Remove(key string) error {
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("kvstore: remove %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
