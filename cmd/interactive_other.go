//go:build !windows

package main

// enableVT is a no-op outside Windows; Unix terminals already interpret
// ANSI sequences.
func enableVT() {}
