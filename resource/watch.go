package resource

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports image files under a set of directory trees that changed on
// disk. Events is drained by the editor between frames.
type Watcher struct {
	Events chan string
	Errors chan error

	fsw  *fsnotify.Watcher
	done chan struct{}
	once sync.Once
}

// NewWatcher watches each root and every directory below it.
func NewWatcher(roots ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := addTree(fsw, root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

// Drain returns the files queued since the last call without blocking.
func (w *Watcher) Drain() []string {
	var changed []string
	for {
		select {
		case name := <-w.Events:
			changed = append(changed, name)
		default:
			return changed
		}
	}
}

func (w *Watcher) loop() {
	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				// New subdirectories join the watch; a failure only costs events.
				_ = addTree(w.fsw, ev.Name)
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if !IsImageFile(ev.Name) {
				continue
			}
			now := time.Now()
			if prev, ok := seen[ev.Name]; ok && now.Sub(prev) < debounce {
				continue
			}
			seen[ev.Name] = now
			select {
			case w.Events <- ev.Name:
			case <-w.done:
				return
			}
		}
	}
}

// IsImageFile reports whether path has an extension the cache can decode.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}
