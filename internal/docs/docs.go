// Package docs serves the static JSON documents published under
// /api/docs.
package docs

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// ErrNotFound is returned for documents that do not exist or are not
// valid JSON.
var ErrNotFound = errors.New("document not found")

// Config configures the document store.
type Config struct {
	// Dir is an optional directory searched before the built-in fixtures.
	Dir string `conf:"dir"`
}

// Store loads JSON documents by name.
type Store struct {
	sources []fs.FS
	log     *zap.Logger
}

// NewStore creates a store backed by the built-in fixtures and, if
// configured, a directory on disk.
func NewStore(config Config, log *zap.Logger) (*Store, error) {
	builtin, err := fs.Sub(fixtures, "fixtures")
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}

	var sources []fs.FS

	if config.Dir != "" {
		info, err := os.Stat(config.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open docs dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("docs dir %s is not a directory", config.Dir)
		}
		sources = append(sources, os.DirFS(config.Dir))
	}

	sources = append(sources, builtin)

	log = log.Named("docs")
	log.Debug("document store ready",
		zap.Strings("builtin", builtinNames()),
		zap.String("dir", config.Dir),
	)

	return &Store{
		sources: sources,
		log:     log,
	}, nil
}

// Load returns the named document. Names are single path segments.
func (s *Store) Load(name string) (json.RawMessage, error) {
	if !validName(name) {
		return nil, ErrNotFound
	}

	for _, source := range s.sources {
		data, err := fs.ReadFile(source, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			s.log.Warn("failed to read document", zap.String("name", name), zap.Error(err))
			return nil, ErrNotFound
		}

		if !json.Valid(data) {
			s.log.Debug("document is not valid json", zap.String("name", name))
			return nil, ErrNotFound
		}

		return json.RawMessage(data), nil
	}

	return nil, ErrNotFound
}

// builtinNames lists the embedded documents.
func builtinNames() []string {
	entries, err := fs.ReadDir(fixtures, "fixtures")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`) && path.Clean(name) == name
}
