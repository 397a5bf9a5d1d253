// Package theme provides color palettes for the terminal host.
// Palettes are TOML files. A few are bundled, and users can add their own
// under ~/.config/tipwalk/themes/, where a file with a bundled name
// overrides the bundled palette.
package theme
