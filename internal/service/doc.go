// Package service ties the walker to its surroundings: it validates the
// requested address, runs the walk from the configured entry device, logs
// the outcome and hands successful results to the sinks.
package service
