// Package repository manages machine and style configs: a set bundled with
// the binary plus user-imported ones in the user config directory. User
// entries shadow bundled entries with the same id.
package repository

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/floeze/naviz/internal/parser"
)

//go:embed machines/*.namachine styles/*.nastyle
var bundled embed.FS

// Entry is one available config.
type Entry struct {
	ID      string
	Name    string
	Bundled bool
}

// Repository is a collection of configs of one kind.
type Repository struct {
	kind     string
	ext      string
	userDir  string
	validate func(src string) (name string, err error)
}

// Machines opens the machine config repository.
func Machines() (*Repository, error) {
	return open("machines", ".namachine", func(src string) (string, error) {
		m, err := parser.ParseMachineConfig(src)
		if err != nil {
			return "", err
		}
		return m.Name, nil
	})
}

// Styles opens the style config repository.
func Styles() (*Repository, error) {
	return open("styles", ".nastyle", func(src string) (string, error) {
		v, err := parser.ParseVisualConfig(src)
		if err != nil {
			return "", err
		}
		return v.Name, nil
	})
}

func open(kind, ext string, validate func(string) (string, error)) (*Repository, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locating user config dir: %w", err)
	}
	return &Repository{
		kind:     kind,
		ext:      ext,
		userDir:  filepath.Join(base, "naviz", kind),
		validate: validate,
	}, nil
}

// UserDir returns the directory user imports are stored in.
func (r *Repository) UserDir() string { return r.userDir }

// List returns all entries sorted by id.
func (r *Repository) List() ([]Entry, error) {
	byID := make(map[string]Entry)

	names, err := fs.Glob(bundled, r.kind+"/*"+r.ext)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		id := strings.TrimSuffix(filepath.Base(name), r.ext)
		src, err := bundled.ReadFile(name)
		if err != nil {
			return nil, err
		}
		display, err := r.validate(string(src))
		if err != nil {
			return nil, fmt.Errorf("bundled %s %q: %w", r.kind, id, err)
		}
		byID[id] = Entry{ID: id, Name: display, Bundled: true}
	}

	files, err := os.ReadDir(r.userDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), r.ext) {
			continue
		}
		id := strings.TrimSuffix(f.Name(), r.ext)
		src, err := os.ReadFile(filepath.Join(r.userDir, f.Name()))
		if err != nil {
			return nil, err
		}
		display, err := r.validate(string(src))
		if err != nil {
			// Skip broken user files rather than failing the listing.
			continue
		}
		byID[id] = Entry{ID: id, Name: display}
	}

	entries := make([]Entry, 0, len(byID))
	for _, e := range byID {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Has reports whether an entry exists.
func (r *Repository) Has(id string) bool {
	_, err := r.Raw(id)
	return err == nil
}

// Raw returns the source text of an entry. User entries shadow bundled ones.
func (r *Repository) Raw(id string) (string, error) {
	if src, err := os.ReadFile(filepath.Join(r.userDir, id+r.ext)); err == nil {
		return string(src), nil
	}
	src, err := bundled.ReadFile(r.kind + "/" + id + r.ext)
	if err != nil {
		return "", fmt.Errorf("no %s named %q", strings.TrimSuffix(r.kind, "s"), id)
	}
	return string(src), nil
}

// Import validates the file and copies it into the user directory under the
// given id. An empty id uses the file name.
func (r *Repository) Import(path, id string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if _, err := r.validate(string(src)); err != nil {
		return "", fmt.Errorf("validating %s: %w", path, err)
	}

	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), r.ext)
	}
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid id %q", id)
	}

	if err := os.MkdirAll(r.userDir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(r.userDir, id+r.ext), src, 0644); err != nil {
		return "", err
	}
	return id, nil
}

// Remove deletes a user entry. Bundled entries cannot be removed.
func (r *Repository) Remove(id string) error {
	path := filepath.Join(r.userDir, id+r.ext)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no user %s named %q", strings.TrimSuffix(r.kind, "s"), id)
		}
		return err
	}
	return os.Remove(path)
}

// Machine loads and decodes a machine entry.
func Machine(id string) (*parser.MachineConfig, error) {
	r, err := Machines()
	if err != nil {
		return nil, err
	}
	src, err := r.Raw(id)
	if err != nil {
		return nil, err
	}
	return parser.ParseMachineConfig(src)
}

// Style loads and decodes a style entry.
func Style(id string) (*parser.VisualConfig, error) {
	r, err := Styles()
	if err != nil {
		return nil, err
	}
	src, err := r.Raw(id)
	if err != nil {
		return nil, err
	}
	return parser.ParseVisualConfig(src)
}
