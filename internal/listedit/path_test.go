package listedit

import (
	"testing"

	"mortarEditor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoHosts() models.Document {
	return models.Document{Hosts: []models.HostEntry{
		{
			DisplayName: "A",
			Password:    "secret",
			Platforms:   []models.Platform{{LocalDirectory: "/a/1"}, {LocalDirectory: "/a/2"}},
			Filters: models.Filters{
				InclusiveFilters: []string{"*.iso", "*.bin"},
				ExclusiveFilters: []string{"*.tmp"},
			},
		},
		{DisplayName: "B"},
	}}
}

func TestDuplicateHostScenario(t *testing.T) {
	doc := models.Document{Hosts: []models.HostEntry{{DisplayName: "A"}, {DisplayName: "B"}}}

	got, err := Hosts.Duplicate(doc, 0)
	require.NoError(t, err)

	want := models.Document{Hosts: []models.HostEntry{
		{DisplayName: "A"}, {DisplayName: "A (Copy)"}, {DisplayName: "B"},
	}}
	assert.Equal(t, want, got)
	assert.Len(t, doc.Hosts, 2)
}

func TestDuplicateHostIsDeepCopy(t *testing.T) {
	doc := twoHosts()

	got, err := Hosts.Duplicate(doc, 0)
	require.NoError(t, err)
	require.Len(t, got.Hosts, 3)

	orig, dup := got.Hosts[0], got.Hosts[1]
	assert.Equal(t, "A (Copy)", dup.DisplayName)
	dup.DisplayName = orig.DisplayName
	assert.Equal(t, orig, dup)

	got.Hosts[1].Platforms[0].LocalDirectory = "/changed"
	got.Hosts[1].Filters.InclusiveFilters[0] = "*.changed"
	assert.Equal(t, "/a/1", got.Hosts[0].Platforms[0].LocalDirectory)
	assert.Equal(t, "*.iso", got.Hosts[0].Filters.InclusiveFilters[0])
	assert.Equal(t, twoHosts(), doc)
}

func TestNestedCollections(t *testing.T) {
	doc := twoHosts()

	got, err := PlatformsOf(0).MoveDown(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, "/a/2", got.Hosts[0].Platforms[0].LocalDirectory)

	got, err = InclusiveFiltersOf(0).Duplicate(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.iso", "*.bin", "*.bin"}, got.Hosts[0].Filters.InclusiveFilters)

	got, err = ExclusiveFiltersOf(0).Remove(doc, 0)
	require.NoError(t, err)
	assert.Empty(t, got.Hosts[0].Filters.ExclusiveFilters)
	assert.Equal(t, doc.Hosts[0].Filters.InclusiveFilters, got.Hosts[0].Filters.InclusiveFilters)

	got, err = PlatformsOf(1).Add(doc, models.Platform{LocalDirectory: "/b/1"})
	require.NoError(t, err)
	assert.Equal(t, []models.Platform{{LocalDirectory: "/b/1"}}, got.Hosts[1].Platforms)

	assert.Equal(t, twoHosts(), doc, "input document must not change")
}

func TestPathRejectsInvalidIndices(t *testing.T) {
	doc := twoHosts()

	got, err := PlatformsOf(5).Remove(doc, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, doc, got)

	got, err = Hosts.Move(doc, 0, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, doc, got)

	got, err = Hosts.MoveUp(doc, 0)
	assert.ErrorIs(t, err, ErrBoundary)
	assert.Equal(t, doc, got)

	assert.Equal(t, -1, PlatformsOf(-1).Len(doc))
	assert.False(t, Hosts.CanMoveUp(doc, 0))
	assert.True(t, Hosts.CanMoveDown(doc, 0))
	assert.False(t, Hosts.CanMoveDown(doc, 1))
}

func TestAddChecksElementType(t *testing.T) {
	doc := twoHosts()

	_, err := Hosts.Add(doc, "not a host")
	assert.ErrorIs(t, err, ErrElementType)
	_, err = InclusiveFiltersOf(0).Add(doc, models.Platform{})
	assert.ErrorIs(t, err, ErrElementType)
	_, err = Hosts.Add(doc, 42)
	assert.ErrorIs(t, err, ErrElementType)

	got, err := Hosts.Add(doc, models.HostEntry{DisplayName: "C"})
	require.NoError(t, err)
	assert.Equal(t, 3, Hosts.Len(got))
	assert.Equal(t, "C", got.Hosts[2].DisplayName)
}

func TestRemoveShiftsLeft(t *testing.T) {
	doc := models.Document{Hosts: []models.HostEntry{{DisplayName: "A"}, {DisplayName: "B"}, {DisplayName: "C"}}}

	got, err := Hosts.Remove(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.HostEntry{{DisplayName: "A"}, {DisplayName: "C"}}, got.Hosts)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"hosts", Hosts},
		{"hosts[0].platforms", PlatformsOf(0)},
		{"hosts[12].filters.inclusive_filters", InclusiveFiltersOf(12)},
		{"hosts[3].filters.exclusive_filters", ExclusiveFiltersOf(3)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}

	for _, bad := range []string{"", "host", "hosts[].platforms", "hosts[1]", "hosts[1].filters", "hosts[-1].platforms"} {
		_, err := ParsePath(bad)
		assert.Error(t, err, bad)
	}
}
