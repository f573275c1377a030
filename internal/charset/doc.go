// Package charset resolves character categories into the symbol groups
// a password is drawn from.
//
// There are exactly four categories: lowercase letters, uppercase letters,
// digits and ASCII punctuation. Their contents are constant. A Selection
// names the categories in use, built either by inclusion or by exclusion,
// and Resolve turns it into the ordered groups consumed by the generator
// and the entropy calculator.
package charset
