// Package manifest reads project manifests and duplicate-group files.
//
// A project manifest describes a host corpus in TOML:
//
//	[[assets]]
//	path = "Assets/Textures/skin.png"
//	label = "skin"
//	file = "textures/skin.png"   # or: content = "inline bytes"
//
//	[[consumers]]
//	id = "Body"
//
//	  [[consumers.slots]]
//	  name = "_MainTex"
//	  asset = "Assets/Textures/skin.png"
//
// Slots keep file order. A slot without an asset is empty. The manifest is
// authoritative for consumers: applying it again drops consumers the file no
// longer declares. Assets are only ever added or updated; removing them is
// left to the deletion gate.
//
// A groups file lists duplicate groups by asset id or path:
//
//	[[groups]]
//	master = "Assets/Textures/skin.png"
//	duplicates = ["Assets/Textures/skin 1.png"]
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// Manifest is a declarative host corpus.
type Manifest struct {
	Assets    []AssetEntry    `toml:"assets"`
	Consumers []ConsumerEntry `toml:"consumers"`

	dir string
}

// AssetEntry declares one asset.
type AssetEntry struct {
	Path    string `toml:"path"`
	Label   string `toml:"label"`
	File    string `toml:"file"`
	Content string `toml:"content"`
}

// ConsumerEntry declares one consumer and its slots.
type ConsumerEntry struct {
	ID    string      `toml:"id"`
	Slots []SlotEntry `toml:"slots"`
}

// SlotEntry declares one slot.
type SlotEntry struct {
	Name  string `toml:"name"`
	Asset string `toml:"asset"`
}

// Importer receives a manifest's contents.
type Importer interface {
	PutAsset(ctx context.Context, path, label string, content []byte) error
	PutConsumer(ctx context.Context, id domain.ConsumerID, slots []domain.Slot) error
	ListConsumers(ctx context.Context) ([]domain.ConsumerID, error)
	DropConsumer(ctx context.Context, id domain.ConsumerID) error
}

// Load parses a manifest file. Relative asset files resolve against the
// manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest: %w", domain.ErrInvalidInput, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	paths := make(map[string]bool, len(m.Assets))
	for i, a := range m.Assets {
		if a.Path == "" {
			return fmt.Errorf("%w: asset %d has no path", domain.ErrInvalidInput, i)
		}
		if a.File != "" && a.Content != "" {
			return fmt.Errorf("%w: asset %s sets both file and content", domain.ErrInvalidInput, a.Path)
		}
		if paths[a.Path] {
			return fmt.Errorf("%w: asset %s declared twice", domain.ErrInvalidInput, a.Path)
		}
		paths[a.Path] = true
	}

	ids := make(map[string]bool, len(m.Consumers))
	for i, c := range m.Consumers {
		if c.ID == "" {
			return fmt.Errorf("%w: consumer %d has no id", domain.ErrInvalidInput, i)
		}
		if ids[c.ID] {
			return fmt.Errorf("%w: consumer %s declared twice", domain.ErrInvalidInput, c.ID)
		}
		ids[c.ID] = true

		names := make(map[string]bool, len(c.Slots))
		for _, s := range c.Slots {
			if s.Name == "" {
				return fmt.Errorf("%w: consumer %s has an unnamed slot", domain.ErrInvalidInput, c.ID)
			}
			if names[s.Name] {
				return fmt.Errorf("%w: slot %s.%s declared twice", domain.ErrInvalidInput, c.ID, s.Name)
			}
			names[s.Name] = true
		}
	}
	return nil
}

// Apply writes the manifest into an importer, assets first, then drops
// consumers that are no longer declared.
func (m *Manifest) Apply(ctx context.Context, dst Importer) error {
	for _, a := range m.Assets {
		content, err := m.content(a)
		if err != nil {
			return err
		}
		label := a.Label
		if label == "" {
			label = filepath.Base(a.Path)
		}
		if err := dst.PutAsset(ctx, a.Path, label, content); err != nil {
			return fmt.Errorf("importing asset %s: %w", a.Path, err)
		}
	}

	for _, c := range m.Consumers {
		slots := make([]domain.Slot, 0, len(c.Slots))
		for _, s := range c.Slots {
			slot := domain.Slot{Name: domain.PropertyName(s.Name)}
			if s.Asset != "" {
				slot.Ref = &domain.AssetReference{Path: s.Asset}
			}
			slots = append(slots, slot)
		}
		if err := dst.PutConsumer(ctx, domain.ConsumerID(c.ID), slots); err != nil {
			return fmt.Errorf("importing consumer %s: %w", c.ID, err)
		}
	}
	return m.prune(ctx, dst)
}

func (m *Manifest) prune(ctx context.Context, dst Importer) error {
	declared := make(map[domain.ConsumerID]bool, len(m.Consumers))
	for _, c := range m.Consumers {
		declared[domain.ConsumerID(c.ID)] = true
	}

	existing, err := dst.ListConsumers(ctx)
	if err != nil {
		return fmt.Errorf("listing consumers: %w", err)
	}
	for _, id := range existing {
		if declared[id] {
			continue
		}
		if err := dst.DropConsumer(ctx, id); err != nil {
			return fmt.Errorf("dropping consumer %s: %w", id, err)
		}
	}
	return nil
}

func (m *Manifest) content(a AssetEntry) ([]byte, error) {
	if a.File == "" {
		return []byte(a.Content), nil
	}
	p := a.File
	if !filepath.IsAbs(p) {
		p = filepath.Join(m.dir, p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading asset file for %s: %w", a.Path, err)
	}
	return data, nil
}
