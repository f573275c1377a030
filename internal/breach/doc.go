// Package breach checks candidate passwords against the Have I Been Pwned
// "Pwned Passwords" corpus using its k-anonymity range API.
//
// Only the first five hex characters of the password hash leave the
// process. The service answers with every known hash suffix sharing that
// prefix, and the match is done locally:
//
//	GET https://api.pwnedpasswords.com/range/21BD1
//
//	0018A45C4D1DEF81644B54AB7F969B88D65:10
//	00D4F6E8FA6EECAD2A3AA415EEC418D38EC:2
//	...
//
// A Checker never returns an error. Transport failures are folded into the
// LookupFailed result so the caller alone decides whether to abort.
package breach
