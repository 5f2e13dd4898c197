package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const localDirectoryKey = "local_directory"

// Platform maps a platform onto a local directory. Fields other than
// local_directory are defined by the schema and kept verbatim in Extra.
type Platform struct {
	LocalDirectory string
	Extra          map[string]json.RawMessage
}

func (p Platform) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(p.Extra)+1)
	for k, v := range p.Extra {
		fields[k] = v
	}
	dir, err := json.Marshal(p.LocalDirectory)
	if err != nil {
		return nil, err
	}
	fields[localDirectoryKey] = dir
	return json.Marshal(fields)
}

func (p *Platform) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = Platform{}
	if raw, ok := fields[localDirectoryKey]; ok {
		if err := json.Unmarshal(raw, &p.LocalDirectory); err != nil {
			return fmt.Errorf("%s: %w", localDirectoryKey, err)
		}
		delete(fields, localDirectoryKey)
	}
	if len(fields) == 0 {
		return nil
	}

	// Raw values are compacted so that indented and compact input decode to
	// the same platform.
	p.Extra = make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		p.Extra[k] = json.RawMessage(buf.Bytes())
	}
	return nil
}

// Clone returns a deep copy of the platform.
func (p Platform) Clone() Platform {
	c := Platform{LocalDirectory: p.LocalDirectory}
	if p.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}
