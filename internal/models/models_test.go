package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{Hosts: []HostEntry{{
		DisplayName: "primary",
		HostType:    "webdav",
		RootURI:     "https://example.com/dav",
		Password:    "hunter2",
		Platforms: []Platform{{
			LocalDirectory: "/srv/roms/snes",
			Extra:          map[string]json.RawMessage{"platform": json.RawMessage(`"snes"`)},
		}},
		Filters: Filters{
			InclusiveFilters: []string{"*.sfc", "*.smc"},
			ExclusiveFilters: []string{"*beta*"},
		},
	}}}
}

func TestDocumentCloneIsIndependent(t *testing.T) {
	orig := sampleDocument()
	c := orig.Clone()
	require.Equal(t, orig, c)

	c.Hosts[0].DisplayName = "changed"
	c.Hosts[0].Platforms[0].LocalDirectory = "/tmp"
	c.Hosts[0].Platforms[0].Extra["platform"][1] = 'X'
	c.Hosts[0].Filters.InclusiveFilters[0] = "*.zip"
	c.Hosts[0].Filters.ExclusiveFilters = append(c.Hosts[0].Filters.ExclusiveFilters, "*.txt")

	assert.Equal(t, sampleDocument(), orig)
}

func TestCloneKeepsNilAndEmpty(t *testing.T) {
	assert.Nil(t, Document{}.Clone().Hosts)
	assert.NotNil(t, Document{Hosts: []HostEntry{}}.Clone().Hosts)

	h := HostEntry{Filters: Filters{InclusiveFilters: []string{}}}.Clone()
	assert.Nil(t, h.Platforms)
	assert.NotNil(t, h.Filters.InclusiveFilters)
	assert.Nil(t, h.Filters.ExclusiveFilters)
}

func TestHostTitle(t *testing.T) {
	assert.Equal(t, "primary", HostEntry{DisplayName: "primary"}.Title(0))
	assert.Equal(t, "Host #3", HostEntry{}.Title(2))
}

func TestPlatformKeepsSchemaFields(t *testing.T) {
	in := `{"local_directory":"/roms","platform":"gba","options":{"recursive": true}}`

	var p Platform
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.Equal(t, "/roms", p.LocalDirectory)
	assert.JSONEq(t, `"gba"`, string(p.Extra["platform"]))
	assert.Equal(t, `{"recursive":true}`, string(p.Extra["options"]))
	assert.NotContains(t, p.Extra, localDirectoryKey)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestPlatformRejectsBadLocalDirectory(t *testing.T) {
	var p Platform
	assert.Error(t, json.Unmarshal([]byte(`{"local_directory": 5}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`[]`), &p))
}

func TestSecretIsNeverPrinted(t *testing.T) {
	h := sampleDocument().Hosts[0]

	for _, s := range []string{
		fmt.Sprint(h.Password),
		fmt.Sprintf("%v %s %q", h.Password, h.Password, h.Password),
		fmt.Sprintf("%+v", h),
		fmt.Sprintf("%#v", h.Password),
	} {
		assert.NotContains(t, s, "hunter2")
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("host", "host", h, "password", h.Password)
	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "primary")

	assert.Equal(t, "hunter2", h.Password.Reveal())
	assert.Equal(t, "", Secret("").String())
	assert.False(t, Secret("").IsSet())
}

func TestSecretMarshalsPlainValue(t *testing.T) {
	out, err := json.Marshal(sampleDocument())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"password":"hunter2"`)
}
