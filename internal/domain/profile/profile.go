package profile

import (
	"fmt"
	"path/filepath"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/shared/utils"
)

// Profile describes how to launch one kind of shell session.
type Profile struct {
	Name       string            `json:"name" yaml:"name" toml:"name"`
	Command    string            `json:"command" yaml:"command" toml:"command"`
	Args       []string          `json:"args,omitempty" yaml:"args" toml:"args"`
	Env        map[string]string `json:"env,omitempty" yaml:"env" toml:"env"`
	WorkingDir string            `json:"working_dir,omitempty" yaml:"working_dir" toml:"working_dir"`
	Title      string            `json:"title,omitempty" yaml:"title" toml:"title"`
}

// Validate checks the fields a profile cannot work without.
func (p Profile) Validate() error {
	if err := utils.ValidateProfileName(p.Name, true); err != nil {
		return err
	}
	if p.Command == "" {
		return fmt.Errorf("profile %q has no command", p.Name)
	}
	return nil
}

// DisplayTitle returns the title new sessions start with: the explicit
// title or the command's base name.
func (p Profile) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return filepath.Base(p.Command)
}

// clone deep-copies the profile so callers cannot mutate registry
// state through shared slices or maps.
func (p Profile) clone() Profile {
	out := p
	if p.Args != nil {
		out.Args = append([]string(nil), p.Args...)
	}
	if p.Env != nil {
		out.Env = make(map[string]string, len(p.Env))
		for k, v := range p.Env {
			out.Env[k] = v
		}
	}
	return out
}
