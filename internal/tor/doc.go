// Package tor routes breach lookups through the Tor network.
//
// Range queries already hide the password itself, but they still reveal
// the caller's IP address and the hash prefix of each candidate to the
// breach service. Sending them over Tor removes the link between the two.
//
// Two modes are supported:
//   - Client: an existing SOCKS5 proxy (e.g. a system Tor at 127.0.0.1:9050)
//   - EmbeddedTor: a private Tor daemon started through tornago
//
// Both produce an *http.Client that the breach checker uses unchanged.
package tor
