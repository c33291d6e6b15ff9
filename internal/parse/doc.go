// Package parse turns raw Cisco IOS CLI output into structured values.
//
// Every function here is pure: text in, optional value out. No I/O, no
// logging, no sessions. Rows are matched field by field, never by substring,
// so an address that happens to appear inside unrelated text (a prefix of a
// longer IP, an OUI inside a description) does not produce a match.
//
// Fixtures captured from real devices live in testdata/.
package parse
