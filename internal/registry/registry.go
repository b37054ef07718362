// Package registry keeps the set of monitored URLs in a plain text file,
// one URL per line, and mirrors it in memory for fast reads.
package registry

import (
	"errors"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"statuswatch/internal/domain"
)

type Registry struct {
	mu   sync.RWMutex
	path string
	urls []string // insertion order
	log  *zap.Logger
}

// Open loads the registry from path. A missing file yields an empty
// registry; a file that exists but cannot be read is an error.
func Open(path string, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{path: path, log: log}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			r.urls = append(r.urls, line)
		}
	case os.IsNotExist(err):
		// first run; file appears on the first Add
	default:
		return nil, err
	}

	log.Info("registry_loaded", zap.String("path", path), zap.Int("urls", len(r.urls)))
	return r, nil
}

// Add normalizes url and appends it to the set. It reports false when the
// URL is already present. The file is rewritten before memory is updated,
// so a write failure leaves the registry unchanged.
func (r *Registry) Add(url string) (bool, error) {
	url = domain.NormalizeURL(url)
	if url == "" {
		return false, errors.New("empty url")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.urls {
		if u == url {
			return false, nil
		}
	}

	next := append(append([]string(nil), r.urls...), url)
	if err := r.persist(next); err != nil {
		return false, err
	}
	r.urls = next
	return true, nil
}

// Remove normalizes url the same way Add does and deletes it from the set.
// It reports false when the URL is not present.
func (r *Registry) Remove(url string) (bool, error) {
	url = domain.NormalizeURL(url)
	if url == "" {
		return false, errors.New("empty url")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, u := range r.urls {
		if u == url {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	next := make([]string, 0, len(r.urls)-1)
	next = append(next, r.urls[:idx]...)
	next = append(next, r.urls[idx+1:]...)
	if err := r.persist(next); err != nil {
		return false, err
	}
	r.urls = next
	return true, nil
}

// List returns the URLs in insertion order. The slice is a copy.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.urls...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.urls)
}

// persist rewrites the whole file. Callers hold the write lock.
func (r *Registry) persist(urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}
	return os.WriteFile(r.path, []byte(b.String()), 0o644)
}
