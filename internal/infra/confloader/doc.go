// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader on top of koanf that
// merges several sources into one typed struct.
//
// Priority (highest to lowest):
//
//  1. Process environment variables
//  2. Env file (dotenv format, skipped when missing)
//  3. Configuration file (YAML)
//  4. Values already present in the target struct (defaults)
//
// Environment variables are not derived from key names. Each accepted
// variable is listed in an explicit mapping to a dotted koanf key, and
// aliases may point at the same key with lower priority.
package confloader
