package profile

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Seeder installs the built-in profiles every panel starts with: the
// user's login shell and a plain sh fallback. Seeded profiles survive
// profile-file reloads.
type Seeder struct {
	registry *Registry
	log      *zap.Logger
}

// NewSeeder creates a seeder for the given registry.
func NewSeeder(registry *Registry, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{registry: registry, log: log}
}

// Seed registers the built-ins. The login profile is derived from
// $SHELL and launched with -l the way a terminal app would; when $SHELL
// is unset only the sh profile is seeded.
func (s *Seeder) Seed() error {
	seeded := 0
	if shell := os.Getenv("SHELL"); shell != "" {
		login := Profile{
			Name:    LoginProfileName,
			Command: shell,
			Args:    []string{"-l"},
			Title:   filepath.Base(shell),
		}
		if err := s.registry.AddBuiltin(login); err != nil {
			return err
		}
		seeded++
	}

	if err := s.registry.AddBuiltin(Profile{Name: "sh", Command: FallbackShell}); err != nil {
		return err
	}
	seeded++

	s.log.Info("profiles seeded", zap.Int("count", seeded))
	return nil
}
