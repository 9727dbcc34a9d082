package profile

import (
	"sort"
	"strings"
)

// Selector picks the profile of a bank that matches an export, judging by its
// first line. It returns nil when it cannot decide.
type Selector func(firstLine string) *Profile

// Bank groups the export formats of one institution together with the header
// defaults a statement from that bank starts with.
type Bank struct {
	Name   string // registry key
	BankID string // default bank_id

	// DefaultAccount seeds account_id when the caller supplies none.
	DefaultAccount string
	// AccountRequired rejects parses without an account setting.
	AccountRequired bool

	// Profiles lists the export formats; the first one is the default.
	Profiles []*Profile
	Select   Selector
}

// Profile returns the profile for an export starting with firstLine.
func (b *Bank) Profile(firstLine string) *Profile {
	if b.Select != nil {
		if p := b.Select(firstLine); p != nil {
			return p
		}
	}
	return b.Profiles[0]
}

// NeedsFirstLine reports whether Profile depends on the export content.
func (b *Bank) NeedsFirstLine() bool {
	return b.Select != nil
}

// Charset returns the default charset of the bank's exports.
func (b *Bank) Charset() string {
	return b.Profiles[0].Charset
}

// Registry holds banks by name.
type Registry struct {
	banks map[string]*Bank
}

// NewRegistry creates an empty bank registry.
func NewRegistry() *Registry {
	return &Registry{banks: make(map[string]*Bank)}
}

// Register adds a bank. Panics on a duplicate name or a bank without profiles.
func (r *Registry) Register(b *Bank) {
	key := strings.ToLower(b.Name)
	if _, ok := r.banks[key]; ok {
		panic("duplicate bank: " + key)
	}
	if len(b.Profiles) == 0 {
		panic("bank without profiles: " + key)
	}
	r.banks[key] = b
}

// Get returns the bank registered under name, or nil.
func (r *Registry) Get(name string) *Bank {
	return r.banks[strings.ToLower(name)]
}

// Names returns the registered bank names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.banks))
	for name := range r.banks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in banks.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Easybank())
	r.Register(IngDiBa())
	r.Register(Livebank())
	r.Register(Oberbank())
	r.Register(Raiffeisen())
	return r
}
