package model

// IdentifierLength is the number of trailing characters of a Link used as
// its Identifier.
const IdentifierLength = 17

// Link is the URL of an album page on the catalog site.
type Link string

// Identifier is the stable token derived from a Link and embedded in the
// downloaded cover art.
type Identifier string

// Identifier returns the last IdentifierLength characters of the link.
// Links shorter than that are returned whole.
func (l Link) Identifier() Identifier {
	runes := []rune(string(l))
	if len(runes) <= IdentifierLength {
		return Identifier(l)
	}
	return Identifier(runes[len(runes)-IdentifierLength:])
}

// String implements fmt.Stringer.
func (l Link) String() string {
	return string(l)
}

// IdentifierSet is a set of identifiers found on disk.
type IdentifierSet map[Identifier]struct{}

// NewIdentifierSet creates a set holding the given identifiers.
func NewIdentifierSet(ids ...Identifier) IdentifierSet {
	set := make(IdentifierSet, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Add inserts id into the set.
func (s IdentifierSet) Add(id Identifier) {
	s[id] = struct{}{}
}

// Contains reports whether id is in the set.
func (s IdentifierSet) Contains(id Identifier) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s IdentifierSet) Len() int {
	return len(s)
}

// FilterPending returns the links whose identifier is not in downloaded,
// preserving their relative order. Duplicate links are kept.
func FilterPending(links []Link, downloaded IdentifierSet) []Link {
	pending := make([]Link, 0, len(links))
	for _, link := range links {
		if downloaded.Contains(link.Identifier()) {
			continue
		}
		pending = append(pending, link)
	}
	return pending
}
