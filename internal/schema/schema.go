// Package schema carries the JSON Schema of the Mortar configuration. It
// supplies the default elements added to collections and validates
// documents; validation results are advisory and never block editing.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/listedit"
	"mortarEditor/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed mortar-schema.json
var mortarSchema []byte

// Raw returns the embedded schema document.
func Raw() []byte {
	return mortarSchema
}

type Issue struct {
	Field       string
	Description string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Description)
}

type definition struct {
	Default json.RawMessage `json:"default"`
}

type Validator struct {
	schema      *gojsonschema.Schema
	definitions map[string]definition
}

func NewValidator() (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(mortarSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var doc struct {
		Definitions map[string]definition `json:"definitions"`
	}
	if err := json.Unmarshal(mortarSchema, &doc); err != nil {
		return nil, fmt.Errorf("failed to read schema definitions: %w", err)
	}

	return &Validator{schema: compiled, definitions: doc.Definitions}, nil
}

// Validate checks doc against the schema and returns every violation found.
func (v *Validator) Validate(doc models.Document) ([]Issue, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	issues := make([]Issue, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, Issue{Field: desc.Field(), Description: desc.Description()})
	}
	return issues, nil
}

// AsError folds issues into a single ValidationError, or nil when empty.
func AsError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	return apperr.New(apperr.ValidationError, "document does not match schema", fmt.Errorf("%s", strings.Join(msgs, "; ")))
}

func (v *Validator) decodeDefault(name string, dst any) error {
	def, ok := v.definitions[name]
	if !ok || len(def.Default) == 0 {
		return fmt.Errorf("schema has no default for %q", name)
	}
	return json.Unmarshal(def.Default, dst)
}

func (v *Validator) DefaultHost() (models.HostEntry, error) {
	var h models.HostEntry
	err := v.decodeDefault("host", &h)
	return h, err
}

func (v *Validator) DefaultPlatform() (models.Platform, error) {
	var p models.Platform
	err := v.decodeDefault("platform", &p)
	return p, err
}

func (v *Validator) DefaultPattern() (string, error) {
	var s string
	err := v.decodeDefault("pattern", &s)
	return s, err
}

// DefaultFor returns the default element for the collection addressed by path.
func (v *Validator) DefaultFor(path listedit.Path) (any, error) {
	switch path.Collection {
	case listedit.CollectionHosts:
		return v.DefaultHost()
	case listedit.CollectionPlatforms:
		return v.DefaultPlatform()
	default:
		return v.DefaultPattern()
	}
}
