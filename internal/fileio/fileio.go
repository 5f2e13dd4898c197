// Package fileio moves documents between memory and portable JSON files.
package fileio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/models"
	"mortarEditor/internal/utils"
)

var writeFile = os.WriteFile

const (
	ExportFileName  = "mortar-config.json"
	BackupSuffix    = ".old"
	DefaultFilePerm = 0600
	indent          = "  "
)

// Marshal encodes doc as indented JSON. Array order mirrors the in-memory
// order exactly. It only fails when a platform carries malformed raw JSON,
// which decoding never produces.
func Marshal(doc models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		return nil, apperr.New(apperr.FileError, "failed to marshal document", err)
	}
	return data, nil
}

// Unmarshal decodes text as a whole document. Anything other than a single
// JSON object is an ImportError; no partially decoded document is returned.
func Unmarshal(text []byte) (models.Document, error) {
	trimmed := bytes.TrimSpace(text)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Document{}, apperr.New(apperr.ImportError, "invalid JSON", errors.New("expected a JSON object"))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var doc models.Document
	if err := dec.Decode(&doc); err != nil {
		return models.Document{}, apperr.New(apperr.ImportError, "invalid JSON", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return models.Document{}, apperr.New(apperr.ImportError, "invalid JSON", errors.New("unexpected data after JSON object"))
	}
	return doc, nil
}

// ReadFile reads a .json file selected by the user.
func ReadFile(path string) ([]byte, error) {
	path = utils.ExpandHome(path)
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, apperr.New(apperr.FileError, fmt.Sprintf("%s is not a .json file", filepath.Base(path)), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.New(apperr.FileError, "failed to read file", err)
	}
	return data, nil
}

// Exporter writes documents into Dir under ExportFileName.
type Exporter struct {
	Dir string
}

func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{Dir: utils.ExpandHome(dir)}
}

// Path returns the file the exporter writes.
func (e *Exporter) Path() string {
	return filepath.Join(e.Dir, ExportFileName)
}

// Export writes doc, keeping the previous export as a .old backup.
func (e *Exporter) Export(doc models.Document) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	return e.Path(), e.WriteBytes(data)
}

// WriteBytes writes already encoded document text to the export path.
func (e *Exporter) WriteBytes(data []byte) error {
	return WriteFile(e.Path(), data)
}

// WriteFile writes data to path, creating parent directories and keeping
// the previous content as a .old backup.
func WriteFile(path string, data []byte) error {
	path = utils.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperr.New(apperr.FileError, "failed to create export directory", err)
	}
	_, statErr := os.Stat(path)
	existed := statErr == nil
	if err := BackupFile(path); err != nil {
		return err
	}
	if err := writeFile(path, data, DefaultFilePerm); err != nil {
		// Put the previous content back; a new file is removed instead.
		if existed {
			_ = RestoreBackup(path)
		} else {
			_ = os.Remove(path)
		}
		return apperr.New(apperr.FileError, "failed to write export file", err)
	}
	return nil
}

// BackupFile copies path to path+".old". A missing file needs no backup.
func BackupFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return apperr.New(apperr.FileError, "error reading file for backup", err)
	}

	if err := os.WriteFile(path+BackupSuffix, content, DefaultFilePerm); err != nil {
		return apperr.New(apperr.FileError, "error creating backup file", err)
	}
	return nil
}

// RestoreBackup moves path+".old" back over path.
func RestoreBackup(path string) error {
	backup := path + BackupSuffix
	if _, err := os.Stat(backup); err != nil {
		return apperr.New(apperr.FileError, "no backup to restore", err)
	}
	if err := os.Rename(backup, path); err != nil {
		return apperr.New(apperr.FileError, "error restoring backup", err)
	}
	return nil
}
