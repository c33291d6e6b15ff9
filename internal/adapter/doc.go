// Package adapter answers the three questions the topology walker asks a
// device: which MAC owns an IP, which port a MAC sits behind, and who is
// connected on that port.
//
// Each operation opens its own transport session, runs its commands in
// order, parses the output with package parse and closes the session on
// every path. Nothing is remembered between calls.
//
// "Not present" answers are values (a false flag or a PortLookup status),
// never errors. Errors are always *domain.TransportError.
package adapter
