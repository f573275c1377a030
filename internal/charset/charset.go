package charset

import (
	"fmt"
	"strings"
)

// Category identifies one of the fixed symbol groups.
type Category int

const (
	// Lowercase is a-z.
	Lowercase Category = iota
	// Uppercase is A-Z.
	Uppercase
	// Digit is 0-9.
	Digit
	// Punctuation is the 32 printable ASCII punctuation marks.
	Punctuation
)

// Symbol tables. These match the ASCII definitions used by most password
// policies, so a pool of all four categories has 94 distinct symbols.
const (
	lowercaseSymbols   = "abcdefghijklmnopqrstuvwxyz"
	uppercaseSymbols   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitSymbols       = "0123456789"
	punctuationSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// All lists every category in canonical order.
var All = []Category{Lowercase, Uppercase, Digit, Punctuation}

// String returns the long name of the category.
func (c Category) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digit:
		return "digit"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Short returns the one-letter flag name of the category (l, u, d, p).
func (c Category) Short() string {
	switch c {
	case Lowercase:
		return "l"
	case Uppercase:
		return "u"
	case Digit:
		return "d"
	case Punctuation:
		return "p"
	default:
		return "?"
	}
}

// symbols returns the constant symbol table of the category.
func (c Category) symbols() string {
	switch c {
	case Lowercase:
		return lowercaseSymbols
	case Uppercase:
		return uppercaseSymbols
	case Digit:
		return digitSymbols
	case Punctuation:
		return punctuationSymbols
	default:
		return ""
	}
}

// valid reports whether c is one of the four known categories.
func (c Category) valid() bool {
	return c >= Lowercase && c <= Punctuation
}

// CategoryOf returns the category r belongs to. It reports false for symbols
// outside every table, such as spaces or non-ASCII runes.
func CategoryOf(r rune) (Category, bool) {
	for _, c := range All {
		if strings.ContainsRune(c.symbols(), r) {
			return c, true
		}
	}
	return 0, false
}

// Group is an immutable, ordered run of symbols belonging to one category.
// The zero value is an empty group and is never produced by Resolve.
type Group struct {
	category Category
	symbols  []rune
}

// NewGroup returns the group for the given category.
func NewGroup(c Category) Group {
	return Group{category: c, symbols: []rune(c.symbols())}
}

// Category returns the tag identifying the group.
func (g Group) Category() Category {
	return g.category
}

// Len returns the number of distinct symbols in the group.
func (g Group) Len() int {
	return len(g.symbols)
}

// At returns the i-th symbol of the group.
func (g Group) At(i int) rune {
	return g.symbols[i]
}

// Contains reports whether r belongs to the group.
func (g Group) Contains(r rune) bool {
	for _, s := range g.symbols {
		if s == r {
			return true
		}
	}
	return false
}

// String returns the symbols of the group as a string.
func (g Group) String() string {
	return string(g.symbols)
}

// Selection is the set of categories a batch draws from.
// Build it with Include or Exclude; it is read-only afterwards.
type Selection struct {
	included [Punctuation + 1]bool
}

// Include returns a selection containing only the given categories.
func Include(categories ...Category) Selection {
	var s Selection
	for _, c := range categories {
		if c.valid() {
			s.included[c] = true
		}
	}
	return s
}

// Exclude returns a selection containing every category except the given ones.
// Exclude() with no arguments selects all four categories.
func Exclude(categories ...Category) Selection {
	s := Include(All...)
	for _, c := range categories {
		if c.valid() {
			s.included[c] = false
		}
	}
	return s
}

// Categories returns the selected categories in canonical order.
func (s Selection) Categories() []Category {
	out := make([]Category, 0, len(All))
	for _, c := range All {
		if s.included[c] {
			out = append(out, c)
		}
	}
	return out
}

// IsComplete reports whether all four categories are selected.
func (s Selection) IsComplete() bool {
	return len(s.Categories()) == len(All)
}

// Resolve turns the selection into its symbol groups in canonical order.
// It returns ErrEmptySelection when no category is selected.
func Resolve(s Selection) ([]Group, error) {
	categories := s.Categories()
	if len(categories) == 0 {
		return nil, ErrEmptySelection
	}

	groups := make([]Group, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, NewGroup(c))
	}
	return groups, nil
}

// PoolSize returns the total number of symbols across groups.
// The four standard categories do not overlap, so this is also the number
// of distinct symbols.
func PoolSize(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += g.Len()
	}
	return n
}

// Categories returns the category tags of groups in their current order.
func Categories(groups []Group) []Category {
	out := make([]Category, len(groups))
	for i, g := range groups {
		out[i] = g.category
	}
	return out
}

// ParseCategory parses a single category name. Short (l, u, d, p) and long
// names are accepted, case-insensitively.
func ParseCategory(name string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "l", "lower", "lowercase":
		return Lowercase, nil
	case "u", "upper", "uppercase":
		return Uppercase, nil
	case "d", "digit", "digits":
		return Digit, nil
	case "p", "punct", "punctuation":
		return Punctuation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
}

// ParseCategories parses a comma-separated category list such as "l,d".
// Empty items and duplicates are ignored. An empty string yields no categories.
func ParseCategories(list string) ([]Category, error) {
	var (
		out  []Category
		seen = make(map[Category]bool)
	)
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		c, err := ParseCategory(item)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}
