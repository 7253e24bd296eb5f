package refs

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xplnobj/codec/internal/cache"
	"github.com/xplnobj/codec/internal/model"
	"github.com/xplnobj/codec/internal/writer"
)

// ErrUnresolved is returned when an id-form reference has no definition.
var ErrUnresolved = errors.New("unresolved reference")

// Store finds definitions by id. storage.Backend satisfies it.
type Store interface {
	FindDataref(id uint64) (model.Dataref, error)
	FindCommand(id uint64) (model.Command, error)
}

// Resolver turns id-form references into keys. Names that are not ids are
// returned unchanged. It is safe for concurrent use.
type Resolver struct {
	store   Store
	cache   *cache.RefCache
	lookups cache.SafeCounter
	log     *slog.Logger
}

var _ writer.Resolver = (*Resolver)(nil)

// NewResolver creates a resolver over store. A nil store resolves no ids.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store: store,
		cache: cache.NewRefCache(),
		log:   logger,
	}
}

// Dataref resolves a dataref name.
func (r *Resolver) Dataref(name string) (string, error) {
	if !writer.IsID(name) {
		return name, nil
	}
	id, err := ParseID(name)
	if err != nil {
		return "", fmt.Errorf("dataref %q: %w: %w", name, ErrUnresolved, err)
	}
	if key, ok := r.cache.GetDataref(id); ok {
		return key, nil
	}
	if r.store == nil {
		return "", fmt.Errorf("dataref %q: %w: no definitions loaded", name, ErrUnresolved)
	}

	r.lookups.Inc()
	d, err := r.store.FindDataref(id)
	if err != nil {
		return "", fmt.Errorf("dataref %q: %w: %w", name, ErrUnresolved, err)
	}
	r.cache.AddDataref(id, d.Key)
	r.log.Debug("Resolved dataref", "id", id, "key", d.Key)
	return d.Key, nil
}

// Command resolves a command name.
func (r *Resolver) Command(name string) (string, error) {
	if !writer.IsID(name) {
		return name, nil
	}
	id, err := ParseID(name)
	if err != nil {
		return "", fmt.Errorf("command %q: %w: %w", name, ErrUnresolved, err)
	}
	if key, ok := r.cache.GetCommand(id); ok {
		return key, nil
	}
	if r.store == nil {
		return "", fmt.Errorf("command %q: %w: no definitions loaded", name, ErrUnresolved)
	}

	r.lookups.Inc()
	c, err := r.store.FindCommand(id)
	if err != nil {
		return "", fmt.Errorf("command %q: %w: %w", name, ErrUnresolved, err)
	}
	r.cache.AddCommand(id, c.Key)
	r.log.Debug("Resolved command", "id", id, "key", c.Key)
	return c.Key, nil
}

// Lookups returns how many times the store was queried.
func (r *Resolver) Lookups() int {
	return r.lookups.Value()
}

// Reset drops cached keys, for use after the store's definitions change.
func (r *Resolver) Reset() {
	r.cache.Reset()
}
