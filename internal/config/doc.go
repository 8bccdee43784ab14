// Package config provides configuration structures and utilities for civicdash.
// It defines where the dataset is read from, how views are rendered and
// exported, and how settings are layered: defaults, the .civicdash file,
// CIVICDASH_* environment variables and finally command line flags.
package config
