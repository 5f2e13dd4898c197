package listedit

import (
	"fmt"
	"regexp"
	"strconv"

	"mortarEditor/internal/models"
)

// CopySuffix is appended to the display name of a duplicated host.
const CopySuffix = " (Copy)"

type Collection int

const (
	CollectionHosts Collection = iota
	CollectionPlatforms
	CollectionInclusiveFilters
	CollectionExclusiveFilters
)

func (c Collection) String() string {
	switch c {
	case CollectionHosts:
		return "hosts"
	case CollectionPlatforms:
		return "platforms"
	case CollectionInclusiveFilters:
		return "filters.inclusive_filters"
	case CollectionExclusiveFilters:
		return "filters.exclusive_filters"
	default:
		return "unknown"
	}
}

// Path addresses one ordered collection inside a document. Host is only
// meaningful for the collections nested in a host.
type Path struct {
	Collection Collection
	Host       int
}

var Hosts = Path{Collection: CollectionHosts}

func PlatformsOf(host int) Path {
	return Path{Collection: CollectionPlatforms, Host: host}
}

func InclusiveFiltersOf(host int) Path {
	return Path{Collection: CollectionInclusiveFilters, Host: host}
}

func ExclusiveFiltersOf(host int) Path {
	return Path{Collection: CollectionExclusiveFilters, Host: host}
}

func (p Path) String() string {
	if p.Collection == CollectionHosts {
		return "hosts"
	}
	return fmt.Sprintf("hosts[%d].%s", p.Host, p.Collection)
}

var pathPattern = regexp.MustCompile(`^hosts(?:\[(\d+)\]\.(platforms|filters\.inclusive_filters|filters\.exclusive_filters))?$`)

// ParsePath parses the textual form produced by Path.String.
func ParsePath(s string) (Path, error) {
	m := pathPattern.FindStringSubmatch(s)
	if m == nil {
		return Path{}, fmt.Errorf("invalid collection path %q", s)
	}
	if m[1] == "" {
		return Hosts, nil
	}
	host, err := strconv.Atoi(m[1])
	if err != nil {
		return Path{}, fmt.Errorf("invalid host index in %q: %w", s, err)
	}
	switch m[2] {
	case "platforms":
		return PlatformsOf(host), nil
	case "filters.inclusive_filters":
		return InclusiveFiltersOf(host), nil
	default:
		return ExclusiveFiltersOf(host), nil
	}
}

// slot points at the collection a path resolves to; exactly one field is set.
type slot struct {
	hosts     *[]models.HostEntry
	platforms *[]models.Platform
	patterns  *[]string
}

func (p Path) locate(doc *models.Document) (slot, error) {
	if p.Collection == CollectionHosts {
		return slot{hosts: &doc.Hosts}, nil
	}
	if !inRange(p.Host, len(doc.Hosts)) {
		return slot{}, ErrIndexOutOfRange
	}
	h := &doc.Hosts[p.Host]
	switch p.Collection {
	case CollectionPlatforms:
		return slot{platforms: &h.Platforms}, nil
	case CollectionInclusiveFilters:
		return slot{patterns: &h.Filters.InclusiveFilters}, nil
	case CollectionExclusiveFilters:
		return slot{patterns: &h.Filters.ExclusiveFilters}, nil
	}
	return slot{}, fmt.Errorf("unknown collection %d", int(p.Collection))
}

func (s slot) len() int {
	switch {
	case s.hosts != nil:
		return len(*s.hosts)
	case s.platforms != nil:
		return len(*s.platforms)
	default:
		return len(*s.patterns)
	}
}

// apply runs fn against the addressed collection of a copy of doc. On error
// the original document is returned.
func (p Path) apply(doc models.Document, fn func(slot) error) (models.Document, error) {
	out := doc.Clone()
	s, err := p.locate(&out)
	if err != nil {
		return doc, err
	}
	if err := fn(s); err != nil {
		return doc, err
	}
	return out, nil
}

func assign[T any](dst *[]T) func([]T, error) error {
	return func(out []T, err error) error {
		if err != nil {
			return err
		}
		*dst = out
		return nil
	}
}

func duplicateHost(h models.HostEntry) models.HostEntry {
	c := h.Clone()
	c.DisplayName = h.DisplayName + CopySuffix
	return c
}

func samePattern(s string) string { return s }

// Len returns the length of the addressed collection, or -1 when the path
// does not resolve.
func (p Path) Len(doc models.Document) int {
	s, err := p.locate(&doc)
	if err != nil {
		return -1
	}
	return s.len()
}

func (p Path) CanMoveUp(doc models.Document, index int) bool {
	return CanMoveUp(index, p.Len(doc))
}

func (p Path) CanMoveDown(doc models.Document, index int) bool {
	return CanMoveDown(index, p.Len(doc))
}

func (p Path) Move(doc models.Document, from, to int) (models.Document, error) {
	return p.apply(doc, func(s slot) error {
		switch {
		case s.hosts != nil:
			return assign(s.hosts)(Move(*s.hosts, from, to))
		case s.platforms != nil:
			return assign(s.platforms)(Move(*s.platforms, from, to))
		default:
			return assign(s.patterns)(Move(*s.patterns, from, to))
		}
	})
}

func (p Path) MoveUp(doc models.Document, index int) (models.Document, error) {
	return p.apply(doc, func(s slot) error {
		switch {
		case s.hosts != nil:
			return assign(s.hosts)(MoveUp(*s.hosts, index))
		case s.platforms != nil:
			return assign(s.platforms)(MoveUp(*s.platforms, index))
		default:
			return assign(s.patterns)(MoveUp(*s.patterns, index))
		}
	})
}

func (p Path) MoveDown(doc models.Document, index int) (models.Document, error) {
	return p.apply(doc, func(s slot) error {
		switch {
		case s.hosts != nil:
			return assign(s.hosts)(MoveDown(*s.hosts, index))
		case s.platforms != nil:
			return assign(s.platforms)(MoveDown(*s.platforms, index))
		default:
			return assign(s.patterns)(MoveDown(*s.patterns, index))
		}
	})
}

// Duplicate inserts a deep copy of the element at index right after it.
// Hosts get CopySuffix appended to their display name.
func (p Path) Duplicate(doc models.Document, index int) (models.Document, error) {
	return p.apply(doc, func(s slot) error {
		switch {
		case s.hosts != nil:
			return assign(s.hosts)(Duplicate(*s.hosts, index, duplicateHost))
		case s.platforms != nil:
			return assign(s.platforms)(Duplicate(*s.platforms, index, models.Platform.Clone))
		default:
			return assign(s.patterns)(Duplicate(*s.patterns, index, samePattern))
		}
	})
}

func (p Path) Remove(doc models.Document, index int) (models.Document, error) {
	return p.apply(doc, func(s slot) error {
		switch {
		case s.hosts != nil:
			return assign(s.hosts)(Remove(*s.hosts, index))
		case s.platforms != nil:
			return assign(s.platforms)(Remove(*s.platforms, index))
		default:
			return assign(s.patterns)(Remove(*s.patterns, index))
		}
	})
}

// Add appends elem, which must be a models.HostEntry, models.Platform or
// string matching the addressed collection.
func (p Path) Add(doc models.Document, elem any) (models.Document, error) {
	return p.apply(doc, func(s slot) error {
		switch e := elem.(type) {
		case models.HostEntry:
			if s.hosts == nil {
				return ErrElementType
			}
			*s.hosts = Add(*s.hosts, e.Clone())
		case models.Platform:
			if s.platforms == nil {
				return ErrElementType
			}
			*s.platforms = Add(*s.platforms, e.Clone())
		case string:
			if s.patterns == nil {
				return ErrElementType
			}
			*s.patterns = Add(*s.patterns, e)
		default:
			return ErrElementType
		}
		return nil
	})
}
