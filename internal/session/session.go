// Package session owns the document being edited. It applies list edits
// and renderer changes, runs file import/export and remote load/save, and
// keeps at most one remote operation in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/fileio"
	"mortarEditor/internal/listedit"
	"mortarEditor/internal/models"
	"mortarEditor/internal/schema"
	remote "mortarEditor/internal/sync"
	"mortarEditor/internal/utils"
)

var ErrBusy = errors.New("another remote operation is in progress")

type Controller struct {
	mu   sync.Mutex
	doc  models.Document
	busy bool

	remote    *remote.Client
	exporter  *fileio.Exporter
	validator *schema.Validator
	notifier  Notifier
	logger    *slog.Logger
}

type Option func(*Controller)

// WithRemote switches the session into remote mode.
func WithRemote(client *remote.Client) Option {
	return func(c *Controller) {
		c.remote = client
	}
}

func WithExporter(exporter *fileio.Exporter) Option {
	return func(c *Controller) {
		c.exporter = exporter
	}
}

func WithValidator(v *schema.Validator) Option {
	return func(c *Controller) {
		c.validator = v
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithDocument(doc models.Document) Option {
	return func(c *Controller) {
		c.doc = doc.Clone()
	}
}

func New(opts ...Option) *Controller {
	c := &Controller{
		notifier: discardNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.exporter == nil {
		c.exporter = fileio.NewExporter(".")
	}
	c.logger = c.logger.With("component", "session")
	return c
}

// SetNotifier replaces the notifier; the UI installs itself once its
// program exists.
func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == nil {
		n = discardNotifier{}
	}
	c.notifier = n
}

func (c *Controller) notify(n Notification) {
	c.mu.Lock()
	notifier := c.notifier
	c.mu.Unlock()
	notifier.Notify(n)
}

// Snapshot returns a deep copy of the current document. Asynchronous
// operations take it at dispatch time.
func (c *Controller) Snapshot() models.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

func (c *Controller) set(doc models.Document) {
	c.mu.Lock()
	c.doc = doc
	c.mu.Unlock()
}

// Replace accepts a value emitted by the renderer as the new document.
func (c *Controller) Replace(doc models.Document) {
	doc = doc.Clone()
	c.set(doc)
	c.validate(doc)
}

// Validate checks the current document against the schema and logs every
// issue. Issues never block editing.
func (c *Controller) Validate() []schema.Issue {
	return c.validate(c.Snapshot())
}

func (c *Controller) validate(doc models.Document) []schema.Issue {
	if c.validator == nil {
		return nil
	}
	issues, err := c.validator.Validate(doc)
	if err != nil {
		c.logger.Error("validation failed to run", "error", err)
		return nil
	}
	if len(issues) > 0 {
		c.logger.Warn("Validation errors", "count", len(issues), "error", schema.AsError(issues))
	}
	return issues
}

// edit applies a list operation to the current document. A rejected
// operation leaves the document unchanged.
func (c *Controller) edit(op string, path listedit.Path, fn func(models.Document) (models.Document, error)) error {
	c.mu.Lock()
	doc, err := fn(c.doc)
	if err == nil {
		c.doc = doc
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Debug("list operation rejected", "op", op, "path", path.String(), "error", err)
		return err
	}
	c.logger.Debug("list operation applied", "op", op, "path", path.String())
	return nil
}

func (c *Controller) Move(path listedit.Path, from, to int) error {
	return c.edit("move", path, func(d models.Document) (models.Document, error) {
		return path.Move(d, from, to)
	})
}

func (c *Controller) MoveUp(path listedit.Path, index int) error {
	return c.edit("move_up", path, func(d models.Document) (models.Document, error) {
		return path.MoveUp(d, index)
	})
}

func (c *Controller) MoveDown(path listedit.Path, index int) error {
	return c.edit("move_down", path, func(d models.Document) (models.Document, error) {
		return path.MoveDown(d, index)
	})
}

func (c *Controller) Duplicate(path listedit.Path, index int) error {
	return c.edit("duplicate", path, func(d models.Document) (models.Document, error) {
		return path.Duplicate(d, index)
	})
}

func (c *Controller) Remove(path listedit.Path, index int) error {
	return c.edit("remove", path, func(d models.Document) (models.Document, error) {
		return path.Remove(d, index)
	})
}

func (c *Controller) Add(path listedit.Path, elem any) error {
	return c.edit("add", path, func(d models.Document) (models.Document, error) {
		return path.Add(d, elem)
	})
}

// AddDefault appends the schema default element to the collection.
func (c *Controller) AddDefault(path listedit.Path) error {
	if c.validator == nil {
		return apperr.New(apperr.ConfigError, "no schema available for default elements", nil)
	}
	elem, err := c.validator.DefaultFor(path)
	if err != nil {
		return apperr.New(apperr.ConfigError, "failed to build default element", err)
	}
	return c.Add(path, elem)
}

func (c *Controller) CanMoveUp(path listedit.Path, index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return path.CanMoveUp(c.doc, index)
}

func (c *Controller) CanMoveDown(path listedit.Path, index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return path.CanMoveDown(c.doc, index)
}

// Len returns the length of the collection at path in the current document.
func (c *Controller) Len(path listedit.Path) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return path.Len(c.doc)
}

// Import replaces the whole document with the one decoded from text. On
// failure the current document is kept.
func (c *Controller) Import(text []byte) error {
	doc, err := fileio.Unmarshal(text)
	if err != nil {
		c.logger.Warn("import failed", "error", err)
		c.notify(Notification{
			Level:       LevelError,
			Title:       "Invalid JSON file",
			Description: "The file you selected is not a valid JSON file.",
		})
		return err
	}

	c.set(doc)
	c.validate(doc)
	c.logger.Info("configuration imported", "hosts", len(doc.Hosts))
	c.notify(Notification{
		Level:       LevelSuccess,
		Title:       "Configuration imported",
		Description: "Your configuration has been imported successfully.",
	})
	return nil
}

// ImportFile reads path and imports its content.
func (c *Controller) ImportFile(path string) error {
	text, err := fileio.ReadFile(path)
	if err != nil {
		c.logger.Warn("import failed", "path", path, "error", err)
		c.notify(Notification{
			Level:       LevelError,
			Title:       "Failed to read file",
			Description: err.Error(),
		})
		return err
	}
	return c.Import(text)
}

// Export encodes the current document and writes it to the exporter's
// file. It returns the encoded text and the path written.
func (c *Controller) Export() ([]byte, string, error) {
	data, err := fileio.Marshal(c.Snapshot())
	if err == nil {
		err = c.exporter.WriteBytes(data)
	}
	if err != nil {
		c.logger.Error("export failed", "error", err)
		c.notify(Notification{
			Level:       LevelError,
			Title:       "Export failed",
			Description: err.Error(),
		})
		return nil, "", err
	}

	path := c.exporter.Path()
	c.logger.Info("configuration exported", "path", path, "bytes", len(data))
	c.notify(Notification{
		Level:       LevelSuccess,
		Title:       "Configuration exported",
		Description: utils.ShortenHome(path),
	})
	return data, path, nil
}

func (c *Controller) RemoteMode() bool {
	return c.remote != nil
}

// Address returns the remote address, or "" in file mode.
func (c *Controller) Address() string {
	if c.remote == nil {
		return ""
	}
	return c.remote.Address()
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Controller) beginRemote(action string) error {
	if c.remote == nil {
		err := apperr.New(apperr.ConfigError, "no API address configured", nil)
		c.notify(Notification{Level: LevelError, Title: fmt.Sprintf("Cannot %s configuration", action), Description: err.Error()})
		return err
	}
	if err := c.acquire(); err != nil {
		c.logger.Warn("remote operation rejected", "action", action, "error", err)
		c.notify(Notification{Level: LevelError, Title: "Operation in progress", Description: "Wait for the current request to finish."})
		return err
	}
	return nil
}

// LoadRemote replaces the document with the remote one. On failure the
// current document is kept.
func (c *Controller) LoadRemote(ctx context.Context) error {
	if err := c.beginRemote("load"); err != nil {
		return err
	}

	doc, err := c.remote.Load(ctx)
	if err == nil {
		c.set(doc)
	}
	c.release()

	endpoint := c.remote.Endpoint()
	if err != nil {
		c.notify(Notification{
			Level:       LevelError,
			Title:       "Failed to load configuration",
			Description: fmt.Sprintf("Could not load config from %s. %s", endpoint, apperr.Cause(err)),
		})
		return err
	}

	c.validate(doc)
	c.notify(Notification{
		Level:       LevelSuccess,
		Title:       "Configuration loaded from API",
		Description: fmt.Sprintf("Successfully loaded config from %s", endpoint),
	})
	return nil
}

// SaveRemote posts the document as it is when the call is made. The local
// document is never rolled back.
func (c *Controller) SaveRemote(ctx context.Context) error {
	if err := c.beginRemote("save"); err != nil {
		return err
	}

	err := c.remote.Save(ctx, c.Snapshot())
	c.release()

	endpoint := c.remote.Endpoint()
	if err != nil {
		c.notify(Notification{
			Level:       LevelError,
			Title:       "Failed to save configuration",
			Description: fmt.Sprintf("Could not save config to %s. %s", endpoint, apperr.Cause(err)),
		})
		return err
	}

	c.notify(Notification{
		Level:       LevelSuccess,
		Title:       "Configuration saved to API",
		Description: fmt.Sprintf("Successfully saved config to %s", endpoint),
	})
	return nil
}
