package schema

import (
	"testing"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/listedit"
	"mortarEditor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestDefaultsConformToSchema(t *testing.T) {
	v := newValidator(t)

	host, err := v.DefaultHost()
	require.NoError(t, err)
	assert.Equal(t, "New Host", host.DisplayName)
	assert.NotNil(t, host.Platforms)
	assert.NotNil(t, host.Filters.InclusiveFilters)

	platform, err := v.DefaultPlatform()
	require.NoError(t, err)
	host.Platforms = append(host.Platforms, platform)

	pattern, err := v.DefaultPattern()
	require.NoError(t, err)
	host.Filters.ExclusiveFilters = append(host.Filters.ExclusiveFilters, pattern)

	issues, err := v.Validate(models.Document{Hosts: []models.HostEntry{host}})
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDefaultFor(t *testing.T) {
	v := newValidator(t)

	elem, err := v.DefaultFor(listedit.Hosts)
	require.NoError(t, err)
	assert.IsType(t, models.HostEntry{}, elem)

	elem, err = v.DefaultFor(listedit.PlatformsOf(0))
	require.NoError(t, err)
	assert.IsType(t, models.Platform{}, elem)

	elem, err = v.DefaultFor(listedit.InclusiveFiltersOf(0))
	require.NoError(t, err)
	assert.Equal(t, "", elem)
}

func TestValidateReportsIssues(t *testing.T) {
	v := newValidator(t)

	issues, err := v.Validate(models.Document{Hosts: []models.HostEntry{{DisplayName: ""}}})
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Field, "hosts.0")

	verr := AsError(issues)
	assert.True(t, apperr.Is(verr, apperr.ValidationError))
	assert.NoError(t, AsError(nil))
}

func TestEmptyDocumentIsValid(t *testing.T) {
	v := newValidator(t)

	issues, err := v.Validate(models.Document{})
	require.NoError(t, err)
	assert.Empty(t, issues)
}
