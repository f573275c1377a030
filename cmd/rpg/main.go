// Package main provides the entry point for the rpg CLI.
//
// rpg generates random passwords, reports their entropy and, unless told
// otherwise, rejects every candidate that appears in the Have I Been Pwned
// breach corpus.
//
// Usage:
//
//	rpg <pass-length> [-n count]
//	rpg check [password...]
//	rpg history
//
// See --help for all available options.
package main

func main() {
	Execute()
}
