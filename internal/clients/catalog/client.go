// Package catalog is the location for the dnd5e-api client. The feature
// editor uses it to populate spell pickers, equipment lists, and proficiency
// lookups from the published SRD catalog.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// detailFetchLimit caps concurrent detail lookups against the SRD API.
const detailFetchLimit = 8

// Client defines the interface for SRD catalog lookups
type Client interface {
	// ListSpells returns spells matching the given criteria, with details
	// resolved. A nil input lists everything.
	ListSpells(ctx context.Context, input *ListSpellsInput) ([]*SpellData, error)

	// GetSpell fetches a single spell by its catalog key
	GetSpell(ctx context.Context, key string) (*SpellData, error)

	// ListEquipment returns all equipment references
	ListEquipment(ctx context.Context) ([]*Reference, error)

	// ListEquipmentCategory returns equipment references in a category,
	// e.g. "simple-weapons" or "artisans-tools"
	ListEquipmentCategory(ctx context.Context, category string) ([]*Reference, error)

	// GetProficiency fetches a proficiency reference by key
	GetProficiency(ctx context.Context, key string) (*Reference, error)

	// ListClasses returns all SRD class references
	ListClasses(ctx context.Context) ([]*Reference, error)

	// ListRaces returns all SRD race references
	ListRaces(ctx context.Context) ([]*Reference, error)
}

// ListSpellsInput filters the spell catalog. Zero values mean no filter.
type ListSpellsInput struct {
	// Classes restricts results to spells castable by any of these classes
	Classes []string
	// MaxLevel keeps spells of this level or below; nil keeps all levels
	MaxLevel *int
	// School keeps spells of one school, matched by catalog key
	School string
}

// SpellData is the catalog view of a spell
type SpellData struct {
	Key           string
	Name          string
	Level         int
	School        string
	Classes       []string
	CastingTime   string
	Range         string
	Duration      string
	Concentration bool
	Ritual        bool
}

// Reference is a catalog key and display name
type Reference struct {
	Key  string
	Name string
}

// Config contains configuration options for the catalog client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

type client struct {
	dnd5eClient dnd5e.Interface
}

// New creates a new catalog client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D 5e API client: %w", err)
	}

	// Wrap with caching; the catalog is static between SRD releases
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
	}, nil
}

func (c *client) ListSpells(ctx context.Context, input *ListSpellsInput) ([]*SpellData, error) {
	if input == nil {
		input = &ListSpellsInput{}
	}

	keys, err := c.listSpellKeys(input)
	if err != nil {
		return nil, err
	}

	// Resolve details concurrently; school and level live on the detail record
	spells := make([]*SpellData, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchLimit)
	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			spell, err := c.GetSpell(gctx, key)
			if err != nil {
				return err
			}
			spells[i] = spell
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := make([]*SpellData, 0, len(spells))
	for _, spell := range spells {
		if input.MaxLevel != nil && spell.Level > *input.MaxLevel {
			continue
		}
		if input.School != "" && spell.School != input.School {
			continue
		}
		filtered = append(filtered, spell)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Level != filtered[j].Level {
			return filtered[i].Level < filtered[j].Level
		}
		return filtered[i].Name < filtered[j].Name
	})

	return filtered, nil
}

// listSpellKeys collects candidate spell keys, fanning out per class filter
// and de-duplicating spells shared between class lists.
func (c *client) listSpellKeys(input *ListSpellsInput) ([]string, error) {
	if len(input.Classes) == 0 {
		refs, err := c.dnd5eClient.ListSpells(&dnd5e.ListSpellsInput{})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list spells")
		}
		keys := make([]string, 0, len(refs))
		for _, ref := range refs {
			keys = append(keys, ref.Key)
		}
		return keys, nil
	}

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		keys []string
	)
	g := new(errgroup.Group)
	for _, class := range input.Classes {
		g.Go(func() error {
			refs, err := c.dnd5eClient.ListSpells(&dnd5e.ListSpellsInput{Class: class})
			if err != nil {
				return errors.Wrapf(err, "failed to list spells for class %s", class)
			}
			mu.Lock()
			defer mu.Unlock()
			for _, ref := range refs {
				if _, ok := seen[ref.Key]; ok {
					continue
				}
				seen[ref.Key] = struct{}{}
				keys = append(keys, ref.Key)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *client) GetSpell(_ context.Context, key string) (*SpellData, error) {
	if key == "" {
		return nil, errors.InvalidArgument("spell key cannot be empty")
	}

	spell, err := c.dnd5eClient.GetSpell(key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get spell %s", key)
	}

	data := &SpellData{
		Key:           spell.Key,
		Name:          spell.Name,
		Level:         spell.SpellLevel,
		CastingTime:   spell.CastingTime,
		Range:         spell.Range,
		Duration:      spell.Duration,
		Concentration: spell.Concentration,
		Ritual:        spell.Ritual,
	}
	if spell.SpellSchool != nil {
		data.School = spell.SpellSchool.Key
	}
	for _, class := range spell.SpellClasses {
		if class != nil {
			data.Classes = append(data.Classes, class.Key)
		}
	}

	return data, nil
}

func (c *client) ListEquipment(_ context.Context) ([]*Reference, error) {
	refs, err := c.dnd5eClient.ListEquipment()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list equipment")
	}

	equipment := make([]*Reference, 0, len(refs))
	for _, ref := range refs {
		equipment = append(equipment, &Reference{Key: ref.Key, Name: ref.Name})
	}
	return equipment, nil
}

func (c *client) ListEquipmentCategory(_ context.Context, category string) ([]*Reference, error) {
	if category == "" {
		return nil, errors.InvalidArgument("category cannot be empty")
	}

	list, err := c.dnd5eClient.GetEquipmentCategory(category)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get equipment category %s", category)
	}

	equipment := make([]*Reference, 0, len(list.Equipment))
	for _, ref := range list.Equipment {
		if ref != nil {
			equipment = append(equipment, &Reference{Key: ref.Key, Name: ref.Name})
		}
	}
	return equipment, nil
}

func (c *client) GetProficiency(_ context.Context, key string) (*Reference, error) {
	if key == "" {
		return nil, errors.InvalidArgument("proficiency key cannot be empty")
	}

	prof, err := c.dnd5eClient.GetProficiency(key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get proficiency %s", key)
	}

	return &Reference{Key: prof.Key, Name: prof.Name}, nil
}

func (c *client) ListClasses(_ context.Context) ([]*Reference, error) {
	refs, err := c.dnd5eClient.ListClasses()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list classes")
	}

	classes := make([]*Reference, 0, len(refs))
	for _, ref := range refs {
		classes = append(classes, &Reference{Key: ref.Key, Name: ref.Name})
	}
	return classes, nil
}

func (c *client) ListRaces(_ context.Context) ([]*Reference, error) {
	refs, err := c.dnd5eClient.ListRaces()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list races")
	}

	races := make([]*Reference, 0, len(refs))
	for _, ref := range refs {
		races = append(races, &Reference{Key: ref.Key, Name: ref.Name})
	}
	return races, nil
}
