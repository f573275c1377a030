// Package config holds the validated options of one rpg invocation.
// Values come from command-line flags only.
package config
