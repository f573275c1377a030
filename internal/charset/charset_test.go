package charset

import (
	"errors"
	"slices"
	"testing"
)

// TestGroupSizes verifies the constant symbol tables.
func TestGroupSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     int
	}{
		{Lowercase, 26},
		{Uppercase, 26},
		{Digit, 10},
		{Punctuation, 32},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			t.Parallel()
			if got := NewGroup(tt.category).Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("groups do not overlap", func(t *testing.T) {
		t.Parallel()
		seen := make(map[rune]Category)
		for _, c := range All {
			g := NewGroup(c)
			for i := 0; i < g.Len(); i++ {
				r := g.At(i)
				if prev, ok := seen[r]; ok {
					t.Fatalf("symbol %q in both %s and %s", r, prev, c)
				}
				seen[r] = c
			}
		}
		if len(seen) != 94 {
			t.Errorf("expected 94 distinct symbols, got %d", len(seen))
		}
	})
}

// TestResolve tests inclusion and exclusion selections.
func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("default exclusion selects all four", func(t *testing.T) {
		t.Parallel()
		groups, err := Resolve(Exclude())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(Categories(groups), All) {
			t.Errorf("got %v, want %v", Categories(groups), All)
		}
		if PoolSize(groups) != 94 {
			t.Errorf("PoolSize() = %d, want 94", PoolSize(groups))
		}
	})

	t.Run("excluding u and d leaves lowercase and punctuation", func(t *testing.T) {
		t.Parallel()
		excluded, err := ParseCategories("u,d")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		groups, err := Resolve(Exclude(excluded...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Category{Lowercase, Punctuation}
		if !slices.Equal(Categories(groups), want) {
			t.Errorf("got %v, want %v", Categories(groups), want)
		}
	})

	t.Run("excluding everything fails", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(Exclude(All...))
		if !errors.Is(err, ErrEmptySelection) {
			t.Errorf("expected ErrEmptySelection, got %v", err)
		}
	})

	t.Run("empty inclusion fails", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(Include())
		if !errors.Is(err, ErrEmptySelection) {
			t.Errorf("expected ErrEmptySelection, got %v", err)
		}
	})

	t.Run("inclusion and equivalent exclusion agree", func(t *testing.T) {
		t.Parallel()
		if Include(Digit, Lowercase) != Exclude(Uppercase, Punctuation) {
			t.Error("expected equal selections")
		}
	})

	t.Run("resolve is idempotent", func(t *testing.T) {
		t.Parallel()
		sel := Include(Uppercase, Punctuation)
		a, err := Resolve(sel)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := Resolve(sel)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(a) != len(b) {
			t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].String() != b[i].String() {
				t.Errorf("group %d differs: %q vs %q", i, a[i], b[i])
			}
		}
	})
}

// TestParseCategories tests parsing of comma-separated category lists.
func TestParseCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []Category
		wantErr error
	}{
		{name: "short names", input: "l,u,d,p", want: All},
		{name: "long names mixed case", input: "Lowercase, DIGITS", want: []Category{Lowercase, Digit}},
		{name: "duplicates ignored", input: "p,p,punctuation", want: []Category{Punctuation}},
		{name: "empty items ignored", input: ",l,,", want: []Category{Lowercase}},
		{name: "empty string", input: "", want: nil},
		{name: "unknown token", input: "l,x", wantErr: ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCategories(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupContains(t *testing.T) {
	t.Parallel()

	g := NewGroup(Punctuation)
	if !g.Contains('~') || !g.Contains('\\') {
		t.Error("expected punctuation group to contain ~ and \\")
	}
	if g.Contains('a') {
		t.Error("punctuation group must not contain letters")
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r      rune
		want   Category
		wantOK bool
	}{
		{r: 'q', want: Lowercase, wantOK: true},
		{r: 'Q', want: Uppercase, wantOK: true},
		{r: '7', want: Digit, wantOK: true},
		{r: '~', want: Punctuation, wantOK: true},
		{r: '\\', want: Punctuation, wantOK: true},
		{r: ' ', wantOK: false},
		{r: 'é', wantOK: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			t.Parallel()
			got, ok := CategoryOf(tt.r)
			if ok != tt.wantOK {
				t.Fatalf("CategoryOf(%q) ok = %v, want %v", tt.r, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CategoryOf(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}
