// Package codec renders located results for people and tools: an aligned
// table for terminals, JSON and YAML for scripts.
package codec
