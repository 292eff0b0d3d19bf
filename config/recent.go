package config

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"

	"github.com/quasilyte/gdata"
)

const (
	recentKey = "recent_projects"
	maxRecent = 10
)

type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Recent is the most-recently-used list of project files, newest first.
type Recent struct {
	store itemStore
	paths []string
}

// OpenRecent loads the list kept in the per-user data directory.
func OpenRecent(appName string) (*Recent, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("config: open recent list: %w", err)
	}
	return newRecent(m)
}

func newRecent(store itemStore) (*Recent, error) {
	r := &Recent{store: store}
	data, err := store.LoadItem(recentKey)
	if err != nil {
		return nil, fmt.Errorf("config: load recent list: %w", err)
	}
	if data == nil {
		return r, nil
	}
	if err := json.Unmarshal(data, &r.paths); err != nil {
		log.Printf("Ignoring unreadable recent project list: %v", err)
		r.paths = nil
	}
	return r, nil
}

// Paths returns a copy of the list.
func (r *Recent) Paths() []string {
	return slices.Clone(r.paths)
}

// Touch moves path to the front of the list and persists it.
func (r *Recent) Touch(path string) error {
	if path == "" {
		return nil
	}
	paths := make([]string, 0, len(r.paths)+1)
	paths = append(paths, path)
	for _, p := range r.paths {
		if p != path {
			paths = append(paths, p)
		}
	}
	if len(paths) > maxRecent {
		paths = paths[:maxRecent]
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return fmt.Errorf("config: encode recent list: %w", err)
	}
	if err := r.store.SaveItem(recentKey, data); err != nil {
		return fmt.Errorf("config: save recent list: %w", err)
	}
	r.paths = paths
	return nil
}
