// Package profile manages the shell profiles sessions launch from.
//
// A profile names a command plus its arguments, environment, and
// starting directory. The registry holds two layers: built-ins seeded
// at startup (the user's login shell and a plain sh) and profiles
// loaded from an optional YAML or TOML file. Reloading the file swaps
// the loaded layer atomically; built-ins persist.
//
// Components:
//   - Registry: concurrent profile store with default resolution
//   - Seeder: installs the built-in profiles
//   - Loader: parses the profiles file by extension
//   - Watcher: fsnotify-driven hot reload of the profiles file
//
// Default resolution order: the file's declared default, then the
// seeded login shell, then /bin/sh.
package profile
