package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// File is the on-disk profiles document: a list of profiles plus the
// name of the default.
type File struct {
	Default  string    `json:"default" yaml:"default" toml:"default"`
	Profiles []Profile `json:"profiles" yaml:"profiles" toml:"profiles"`
}

// Loader reads a profiles file into the registry, replacing whatever
// was loaded before. Seeded built-ins are untouched.
type Loader struct {
	registry *Registry
	log      *zap.Logger
}

// NewLoader creates a loader for the given registry.
func NewLoader(registry *Registry, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{registry: registry, log: log}
}

// Load reads the file at path and installs its profiles. Individual
// invalid profiles are skipped with a warning; an unreadable or
// unparsable file leaves the registry as it was.
func (l *Loader) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return err
	}

	errs := l.registry.ReplaceLoaded(doc.Profiles)
	for _, e := range errs {
		l.log.Warn("profile skipped", zap.Error(e))
	}
	if doc.Default != "" {
		if err := l.registry.SetDefault(doc.Default); err != nil {
			l.log.Warn("default profile not found", zap.String("name", doc.Default))
		}
	}

	l.log.Info("profiles loaded",
		zap.String("path", path),
		zap.Int("count", len(doc.Profiles)-len(errs)),
		zap.Int("skipped", len(errs)))
	return nil
}

// Parse decodes a profiles document; the extension picks the format.
func Parse(data []byte, ext string) (*File, error) {
	var doc File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml profiles: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse toml profiles: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported profiles format %q", ext)
	}
	return &doc, nil
}
