// Package profile derives per-column profiles and partitions a table into
// scale candidates, encode candidates and untouched columns.
package profile

import (
	"strings"

	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"golang.org/x/text/cases"
)

// DefaultIdentifierSuffixes are name endings that mark numeric identifiers.
var DefaultIdentifierSuffixes = []string{"id", "code"}

// Profile summarizes one column. Cardinality counts distinct non-missing values.
type Profile struct {
	Name        string
	Kind        dataset.Kind
	Cardinality int
	Missing     int
}

// Options controls classification.
type Options struct {
	// IdentifierSuffixes exclude numeric columns whose names end with any of them
	// (case-insensitive). Nil means DefaultIdentifierSuffixes.
	IdentifierSuffixes []string
}

// DefaultOptions returns the stock classification rules.
func DefaultOptions() Options {
	return Options{IdentifierSuffixes: DefaultIdentifierSuffixes}
}

// Role is the bucket a column lands in.
type Role int

const (
	RoleUntouched Role = iota
	RoleScale
	RoleEncode
)

func (r Role) String() string {
	switch r {
	case RoleScale:
		return "scale"
	case RoleEncode:
		return "encode"
	default:
		return "untouched"
	}
}

// Plan partitions column names by role, each list in table order.
type Plan struct {
	Profiles  []Profile
	Scale     []string
	Encode    []string
	Untouched []string
	// Reasons explains untouched columns by name.
	Reasons map[string]string
}

// Of builds the profile of a single column.
func Of(c dataset.Column) Profile {
	p := Profile{Name: c.Name, Kind: c.Kind, Missing: c.Missing()}
	if c.Kind == dataset.KindNumeric {
		seen := make(map[float64]struct{})
		for _, x := range c.Num.Present() {
			seen[x] = struct{}{}
		}
		p.Cardinality = len(seen)
		return p
	}
	seen := make(map[string]struct{})
	for i := 0; i < c.Cat.Len(); i++ {
		if s, ok := c.Cat.At(i); ok {
			seen[s] = struct{}{}
		}
	}
	p.Cardinality = len(seen)
	return p
}

// Build profiles every column of t in order.
func Build(t dataset.Table) []Profile {
	cols := t.Columns()
	out := make([]Profile, len(cols))
	for i, c := range cols {
		out[i] = Of(c)
	}
	return out
}

// Classify assigns every column of t to exactly one role.
func Classify(t dataset.Table, opt Options) Plan {
	suffixes := opt.IdentifierSuffixes
	if suffixes == nil {
		suffixes = DefaultIdentifierSuffixes
	}
	fold := cases.Fold()
	folded := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		if s = strings.TrimSpace(s); s != "" {
			folded = append(folded, fold.String(s))
		}
	}

	plan := Plan{Profiles: Build(t), Reasons: map[string]string{}}
	for _, p := range plan.Profiles {
		role, reason := roleOf(p, folded, fold)
		switch role {
		case RoleScale:
			plan.Scale = append(plan.Scale, p.Name)
		case RoleEncode:
			plan.Encode = append(plan.Encode, p.Name)
		default:
			plan.Untouched = append(plan.Untouched, p.Name)
			plan.Reasons[p.Name] = reason
		}
	}
	return plan
}

func roleOf(p Profile, suffixes []string, fold cases.Caser) (Role, string) {
	if p.Kind == dataset.KindText {
		return RoleEncode, ""
	}
	if p.Cardinality <= 2 {
		return RoleUntouched, "binary or constant numeric"
	}
	name := fold.String(p.Name)
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return RoleUntouched, "identifier-like name (*" + s + ")"
		}
	}
	return RoleScale, ""
}
