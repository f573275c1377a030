// Package generator draws random passwords from resolved symbol groups.
//
// Each password is produced in three steps:
//  1. The group order is shuffled with an ordinary PRNG.
//  2. Position i draws one symbol from groups[i mod len(groups)] using a
//     cryptographically secure source.
//  3. The drawn symbols are shuffled again with the PRNG and joined.
//
// The secure draw alone decides which symbols appear, so the two shuffles
// only need to be uniform, not unpredictable. The round-robin assignment
// keeps every selected category represented roughly evenly.
package generator
