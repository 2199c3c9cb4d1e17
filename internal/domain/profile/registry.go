package profile

import (
	"fmt"
	"sort"
	"sync"
)

// FallbackShell is the shell of last resort when nothing else is
// registered.
const FallbackShell = "/bin/sh"

// LoginProfileName is the seeded profile built from the user's $SHELL.
const LoginProfileName = "login"

// Registry holds the known shell profiles. Built-in profiles and
// file-loaded profiles live side by side: a reload replaces the loaded
// set wholesale while built-ins survive. All methods are safe for
// concurrent use and return copies.
type Registry struct {
	mu          sync.RWMutex
	profiles    map[string]Profile
	builtin     map[string]bool
	defaultName string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
		builtin:  make(map[string]bool),
	}
}

// Add registers a loaded profile, replacing any previous one with the
// same name.
func (r *Registry) Add(p Profile) error {
	return r.add(p, false)
}

// AddBuiltin registers a seeded profile that survives file reloads.
func (r *Registry) AddBuiltin(p Profile) error {
	return r.add(p, true)
}

func (r *Registry) add(p Profile, builtin bool) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = p.clone()
	r.builtin[p.Name] = builtin
	return nil
}

// ReplaceLoaded swaps the whole non-builtin set for the given profiles.
// Invalid entries are skipped and reported back so the caller can log
// them; everything valid lands atomically.
func (r *Registry) ReplaceLoaded(profiles []Profile) []error {
	var errs []error
	valid := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, p.clone())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, isBuiltin := range r.builtin {
		if !isBuiltin {
			delete(r.profiles, name)
			delete(r.builtin, name)
		}
	}
	for _, p := range valid {
		// A loaded profile may shadow a builtin by name; the builtin
		// flag keeps it reload-replaceable.
		r.profiles[p.Name] = p
		r.builtin[p.Name] = false
	}
	return errs
}

// Get returns a copy of the named profile.
func (r *Registry) Get(name string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, false
	}
	return p.clone(), true
}

// SetDefault marks the profile new sessions use when no name is given.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[name]; !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	r.defaultName = name
	return nil
}

// Default resolves the profile for an unnamed session: the configured
// default, then the seeded login shell, then a bare /bin/sh.
func (r *Registry) Default() Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[r.defaultName]; ok {
		return p.clone()
	}
	if p, ok := r.profiles[LoginProfileName]; ok {
		return p.clone()
	}
	return Profile{Name: "sh", Command: FallbackShell}
}

// Resolve returns the named profile, or the default for an empty name.
// Unknown names also fall back to the default so a stale client cannot
// block session creation.
func (r *Registry) Resolve(name string) Profile {
	if name == "" {
		return r.Default()
	}
	if p, ok := r.Get(name); ok {
		return p
	}
	return r.Default()
}

// List returns every profile sorted by name.
func (r *Registry) List() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultName returns the configured default profile name, which may be
// empty.
func (r *Registry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}
