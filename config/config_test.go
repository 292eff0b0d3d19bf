package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultSimplify != 3 || !cfg.CloseHitboxLoop {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name: "file_overrides_defaults",
			body: "assets_dir: art\ndefault_simplify: 5\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.AssetsDir != "art" || cfg.DefaultSimplify != 5 {
					t.Fatalf("got %+v", cfg)
				}
				if cfg.ProjectsDir != Default().ProjectsDir {
					t.Fatalf("unset key lost its default: %q", cfg.ProjectsDir)
				}
			},
		},
		{
			name: "env_wins_over_file",
			body: "assets_dir: art\nclose_hitbox_loop: true\n",
			env: map[string]string{
				"LEVELEDITOR_ASSETS_DIR":        "/srv/art",
				"LEVELEDITOR_CLOSE_HITBOX_LOOP": "false",
				"LEVELEDITOR_WINDOW_WIDTH":      "640",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.AssetsDir != "/srv/art" || cfg.CloseHitboxLoop || cfg.Window.Width != 640 {
					t.Fatalf("got %+v", cfg)
				}
			},
		},
		{
			name:    "bad_yaml",
			body:    "window: [1, 2\n",
			wantErr: true,
		},
		{
			name:    "bad_env",
			body:    "",
			env:     map[string]string{"LEVELEDITOR_DEFAULT_SIMPLIFY": "lots"},
			wantErr: true,
		},
		{
			name:    "negative_simplify",
			body:    "default_simplify: -1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writeConfig(t, tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

type memStore struct {
	items map[string][]byte
	fail  error
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.fail != nil {
		return m.fail
	}
	m.items[key] = data
	return nil
}

func TestRecent(t *testing.T) {
	store := &memStore{items: map[string][]byte{}}
	r, err := newRecent(store)
	if err != nil {
		t.Fatalf("newRecent: %v", err)
	}
	if len(r.Paths()) != 0 {
		t.Fatalf("fresh list not empty: %v", r.Paths())
	}

	for _, p := range []string{"a.json", "b.json", "a.json", ""} {
		if err := r.Touch(p); err != nil {
			t.Fatalf("Touch(%q): %v", p, err)
		}
	}
	want := []string{"a.json", "b.json"}
	if got := r.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Paths = %v, want %v", got, want)
	}

	reopened, err := newRecent(store)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("reopened Paths = %v, want %v", got, want)
	}
}

func TestRecentCapAndFailures(t *testing.T) {
	store := &memStore{items: map[string][]byte{recentKey: []byte("not json")}}
	r, err := newRecent(store)
	if err != nil {
		t.Fatalf("newRecent: %v", err)
	}
	if len(r.Paths()) != 0 {
		t.Fatalf("garbage list was kept: %v", r.Paths())
	}

	for i := 0; i < maxRecent+5; i++ {
		if err := r.Touch(filepath.Join("p", string(rune('a'+i))+".json")); err != nil {
			t.Fatalf("Touch: %v", err)
		}
	}
	if got := len(r.Paths()); got != maxRecent {
		t.Fatalf("len = %d, want %d", got, maxRecent)
	}

	before := r.Paths()
	store.fail = errors.New("disk full")
	if err := r.Touch("new.json"); err == nil {
		t.Fatalf("expected save error")
	}
	if !reflect.DeepEqual(r.Paths(), before) {
		t.Fatalf("failed Touch changed the list")
	}
}
