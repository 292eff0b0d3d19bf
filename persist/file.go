package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/leveleditor/project"
)

// Save writes p to path, creating parent directories as needed.
func Save(path string, p *project.Project) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// Load reads and decodes the project stored at path.
func Load(path string) (*project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

// ExportLevel writes the engine-facing level document for p to path.
func ExportLevel(path string, p *project.Project) error {
	data, err := EncodeLevel(&p.Level, p.CloseHitboxLoop)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrIO)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}
