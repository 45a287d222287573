// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/taibuivan/formulary/pkg/slice"
)

// Lister loads every entry, newest first.
type Lister interface {
	List(context context.Context) ([]Formula, error)
}

/*
Catalog is the in-memory view of the catalog served to readers.

Entries keep the store order (newest first). The view is changed only through
Load and the Apply methods, which are called after a mutation has succeeded.
Every entry crossing the boundary is cloned, so callers never share memory
with the view.

Catalog is safe for concurrent use.
*/
type Catalog struct {
	mu      sync.RWMutex
	entries []Formula
	loading bool
	source  Lister
	logger  *slog.Logger
}

// NewCatalog returns an empty catalog in the loading state.
func NewCatalog(source Lister, logger *slog.Logger) *Catalog {
	return &Catalog{
		entries: []Formula{},
		loading: true,
		source:  source,
		logger:  logger,
	}
}

// # Loading

/*
Load fetches every entry once.

On failure the catalog stays empty, the error is logged and returned, and no
retry is scheduled. Loading() is false afterwards either way.
*/
func (c *Catalog) Load(ctx context.Context) error {
	entries, err := c.source.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.entries = []Formula{}
		c.logger.Error("catalog_load_failed", slog.Any("error", err))
		return err
	}

	c.entries = cloneAll(entries)
	c.logger.Info("catalog_loaded", slog.Int("entries", len(c.entries)))
	return nil
}

// Loading reports whether the initial load is still in progress.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// # Reads

// Entries returns a copy of every entry in order.
func (c *Catalog) Entries() []Formula {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Get returns a copy of the entry with the given id.
func (c *Catalog) Get(id int64) (Formula, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.entries[i].Clone(), true
	}
	return Formula{}, false
}

/*
Filter yields the entries whose title, short description or category in lang,
or whose English title, contains term. Matching uses Unicode case folding.

An empty term yields every entry in order. Whitespace is part of the term. The sequence is evaluated lazily
against a snapshot taken when iteration starts, and can be ranged over again
to see later changes.
*/
func (c *Catalog) Filter(term string, lang Language) iter.Seq[Formula] {
	return func(yield func(Formula) bool) {
		snapshot := c.Entries()

		folder := cases.Fold()
		needle := folder.String(term)

		for _, entry := range snapshot {
			if needle != "" && !matches(folder, entry, needle, lang) {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

func matches(folder cases.Caser, entry Formula, needle string, lang Language) bool {
	for _, haystack := range []string{
		entry.Title.In(lang),
		entry.ShortDescription.In(lang),
		entry.Category.In(lang),
		entry.Title.EN,
	} {
		if strings.Contains(folder.String(haystack), needle) {
			return true
		}
	}
	return false
}

// # Updates

// ApplyAdd prepends a new entry.
func (c *Catalog) ApplyAdd(entry Formula) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = slices.Insert(c.entries, 0, entry.Clone())
}

// ApplyUpdate replaces the entry with the same id in place. Unknown ids are ignored.
func (c *Catalog) ApplyUpdate(entry Formula) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(entry.ID); i >= 0 {
		c.entries[i] = entry.Clone()
	}
}

// ApplyDelete removes the entry with the given id.
func (c *Catalog) ApplyDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = slices.DeleteFunc(c.entries, func(entry Formula) bool {
		return entry.ID == id
	})
}

func (c *Catalog) indexOf(id int64) int {
	return slices.IndexFunc(c.entries, func(entry Formula) bool {
		return entry.ID == id
	})
}

func cloneAll(entries []Formula) []Formula {
	return slice.OrEmpty(slice.Map(entries, Formula.Clone))
}
