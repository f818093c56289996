// Package config loads, normalizes, and validates curator's TOML
// configuration.
//
// Load resolves the file (explicit flag, then ~/.config/curator/config.toml),
// decodes it over Default(), expands every path field, and validates the
// result. A missing file is not an error; defaults apply. WriteSample
// materializes the embedded sample for `curator config init`.
package config
