// internal/models/host.go

package models

import (
	"fmt"
	"log/slog"
)

// Document is the root of a Mortar configuration.
type Document struct {
	Hosts []HostEntry `json:"hosts"`
}

// HostEntry describes one remote host. DisplayName is the label shown in the
// editor; it is not required to be unique.
type HostEntry struct {
	DisplayName string     `json:"display_name"`
	HostType    string     `json:"host_type"`
	RootURI     string     `json:"root_uri"`
	Password    Secret     `json:"password"`
	Platforms   []Platform `json:"platforms"`
	Filters     Filters    `json:"filters"`
}

// Filters holds the two independent ordered filter pattern lists of a host.
type Filters struct {
	InclusiveFilters []string `json:"inclusive_filters"`
	ExclusiveFilters []string `json:"exclusive_filters"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d.Hosts == nil {
		return Document{}
	}
	hosts := make([]HostEntry, len(d.Hosts))
	for i, h := range d.Hosts {
		hosts[i] = h.Clone()
	}
	return Document{Hosts: hosts}
}

// Clone returns a copy of the host sharing no mutable storage with h.
func (h HostEntry) Clone() HostEntry {
	c := h
	if h.Platforms != nil {
		c.Platforms = make([]Platform, len(h.Platforms))
		for i, p := range h.Platforms {
			c.Platforms[i] = p.Clone()
		}
	}
	c.Filters = h.Filters.Clone()
	return c
}

// Title returns the label of the host at the given position, falling back to
// "Host #n" when no display name is set.
func (h HostEntry) Title(index int) string {
	if h.DisplayName != "" {
		return h.DisplayName
	}
	return fmt.Sprintf("Host #%d", index+1)
}

// LogValue keeps the password out of structured logs.
func (h HostEntry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("display_name", h.DisplayName),
		slog.String("host_type", h.HostType),
		slog.String("root_uri", h.RootURI),
		slog.Int("platforms", len(h.Platforms)),
	)
}

// Clone returns a deep copy of the filters.
func (f Filters) Clone() Filters {
	return Filters{
		InclusiveFilters: cloneStrings(f.InclusiveFilters),
		ExclusiveFilters: cloneStrings(f.ExclusiveFilters),
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
