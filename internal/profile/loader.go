package profile

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var builtinFS embed.FS

// Registry holds all available profiles
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry creates an empty profile registry
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]*Profile),
	}
}

// Builtin returns a registry holding the embedded profiles
func Builtin() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadFromEmbedded(builtinFS, "profiles"); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFromFile loads a profile from a YAML file. A profile with the same
// name as one already registered replaces it.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}
	return r.add(data, path)
}

// LoadFromDir loads every .yaml and .yml file in dir
func (r *Registry) LoadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read profiles directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		file := filepath.Join(dir, entry.Name())
		if err := r.LoadFromFile(file); err != nil {
			return fmt.Errorf("failed to load profile from %s: %w", file, err)
		}
	}

	return nil
}

// LoadFromEmbedded loads profiles from an embedded filesystem
func (r *Registry) LoadFromEmbedded(fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read embedded profiles: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		// embed paths always use forward slashes
		file := path.Join(dir, entry.Name())
		data, err := fsys.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read embedded file %s: %w", file, err)
		}
		if err := r.add(data, file); err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a profile by name
func (r *Registry) Get(name string) (*Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// List returns all profile names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListWithDescriptions returns all profiles with their descriptions
func (r *Registry) ListWithDescriptions() map[string]string {
	result := make(map[string]string, len(r.profiles))
	for name, p := range r.profiles {
		result[name] = p.Description
	}
	return result
}

func (r *Registry) add(data []byte, origin string) error {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse profile YAML from %s: %w", origin, err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile in %s: %w", origin, err)
	}
	r.profiles[p.Name] = &p
	return nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
