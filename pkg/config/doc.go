// Package config handles configuration management for mp3curate.
// It layers the embedded defaults, the user's TOML file and MP3CURATE_*
// environment variables; commands apply their flags on top.
package config
