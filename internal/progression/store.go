package progression

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pixil98/go-progression/internal/content"
	"github.com/pixil98/go-progression/internal/events"
)

const (
	unlocksKey    = "unlocks"
	itemKeyPrefix = "item-"
	waveKeySuffix = "-wave"

	DefaultStarterItem   = "copper"
	DefaultStarterAmount = 300
)

// Settings is the durable key-value store progression is mirrored to.
type Settings interface {
	Has(key string) bool
	GetInt(key string, def int) int
	PutInt(key string, v int)
	GetObject(key string, out any) (bool, error)
	PutObject(key string, v any) error
	Save() error
}

// Registry enumerates the known items.
type Registry interface {
	Item(name string) *content.Item
	ItemList() []*content.Item
}

type Publisher interface {
	Fire(events.Event)
}

// Recorder receives item delivery statistics.
type Recorder interface {
	AddDelivered(item string, amount int)
}

// Unlocks is the persisted form of the unlocked set: sorted names per type.
type Unlocks map[content.Type][]string

// Store holds the player's unlocks, global item inventory and zone wave
// scores. It is not safe for concurrent use; all calls are expected from
// the game's logic goroutine.
type Store struct {
	settings Settings
	registry Registry
	events   Publisher
	stats    Recorder

	unlocked map[content.Type]map[string]struct{}
	items    map[string]int
	modified bool

	starterItem   string
	starterAmount int
}

type Opt func(*Store)

// WithStarterKit sets the item granted on first load and its amount.
func WithStarterKit(item string, amount int) Opt {
	return func(s *Store) {
		s.starterItem = item
		s.starterAmount = amount
	}
}

// NewStore creates an empty store. pub and rec may be nil.
func NewStore(settings Settings, registry Registry, pub Publisher, rec Recorder, opts ...Opt) *Store {
	s := &Store{
		settings:      settings,
		registry:      registry,
		events:        pub,
		stats:         rec,
		unlocked:      map[content.Type]map[string]struct{}{},
		items:         map[string]int{},
		starterItem:   DefaultStarterItem,
		starterAmount: DefaultStarterAmount,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func itemKey(name string) string {
	return itemKeyPrefix + name
}

func waveKey(zone *content.Zone) string {
	return zone.Name() + waveKeySuffix
}

func (s *Store) markModified() {
	s.modified = true
}

// Modified reports whether there are changes not yet saved.
func (s *Store) Modified() bool {
	return s.modified
}

// UpdateWaveScore records wave as the zone's best if it beats the stored
// score. Reaching exactly one past the zone's condition wave fires a
// ZoneCompleteEvent.
func (s *Store) UpdateWaveScore(zone *content.Zone, wave int) {
	if s.settings.GetInt(waveKey(zone), 0) >= wave {
		return
	}

	s.settings.PutInt(waveKey(zone), wave)
	s.markModified()

	if wave == zone.ConditionWave+1 {
		s.fire(events.ZoneCompleteEvent{Zone: zone})
	}
}

func (s *Store) GetWaveScore(zone *content.Zone) int {
	return s.settings.GetInt(waveKey(zone), 0)
}

func (s *Store) IsCompleted(zone *content.Zone) bool {
	return s.GetWaveScore(zone) >= zone.ConditionWave
}

func (s *Store) GetItem(item *content.Item) int {
	return s.items[item.Name()]
}

// AddItem adds amount to the inventory and to the delivered-items
// statistic. Negative amounts are not rejected.
func (s *Store) AddItem(item *content.Item, amount int) {
	s.markModified()
	s.items[item.Name()] += amount
	if s.stats != nil {
		s.stats.AddDelivered(item.Name(), amount)
	}
}

func (s *Store) HasItems(stacks []content.ItemStack) bool {
	for _, stack := range stacks {
		if s.items[stack.Item.Name()] < stack.Amount {
			return false
		}
	}
	return true
}

// RemoveItems subtracts every stack without checking the inventory holds
// enough; callers check with HasItems first. Counts may go negative.
func (s *Store) RemoveItems(stacks []content.ItemStack) {
	for _, stack := range stacks {
		s.items[stack.Item.Name()] -= stack.Amount
	}
	s.markModified()
}

func (s *Store) Has(item *content.Item, amount int) bool {
	return s.items[item.Name()] >= amount
}

// Items returns a copy of the inventory keyed by item name.
func (s *Store) Items() map[string]int {
	return maps.Clone(s.items)
}

func (s *Store) IsUnlocked(c content.Unlockable) bool {
	if c.AlwaysUnlocked() {
		return true
	}
	_, ok := s.unlocked[c.ContentType()][c.Name()]
	return ok
}

// UnlockContent unlocks c if it is not already. A new unlock runs the
// content's unlock hook and fires an UnlockEvent. Changes are not saved
// until Save or CheckSave is called.
func (s *Store) UnlockContent(c content.Unlockable) {
	if c.AlwaysUnlocked() {
		return
	}

	set, ok := s.unlocked[c.ContentType()]
	if !ok {
		set = map[string]struct{}{}
		s.unlocked[c.ContentType()] = set
	}
	if _, ok := set[c.Name()]; ok {
		return
	}

	set[c.Name()] = struct{}{}
	s.markModified()
	c.OnUnlock()
	s.fire(events.UnlockEvent{Content: c})
}

// Unlocked returns the sorted names unlocked under t. Always-unlocked
// content is not included.
func (s *Store) Unlocked(t content.Type) []string {
	return slices.Sorted(maps.Keys(s.unlocked[t]))
}

// Reset saves the current state immediately. It does not clear unlocks.
func (s *Store) Reset() error {
	return s.Save()
}

// CheckSave saves if anything changed since the last successful save.
func (s *Store) CheckSave() error {
	if !s.modified {
		return nil
	}
	if err := s.Save(); err != nil {
		return err
	}
	s.modified = false
	return nil
}

// Tick saves pending changes. Failures are logged and retried on the next
// tick.
func (s *Store) Tick(ctx context.Context) error {
	if err := s.CheckSave(); err != nil {
		slog.ErrorContext(ctx, "saving progression", "error", err)
	}
	return nil
}

// Load replaces in-memory state with what is stored. The first load of a
// fresh store grants the starter kit unless its amount is zero.
func (s *Store) Load() error {
	var stored Unlocks
	if _, err := s.settings.GetObject(unlocksKey, &stored); err != nil {
		return fmt.Errorf("loading unlocks: %w", err)
	}

	s.unlocked = map[content.Type]map[string]struct{}{}
	for t, names := range stored {
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			set[n] = struct{}{}
		}
		s.unlocked[t] = set
	}

	s.items = map[string]int{}
	for _, item := range s.registry.ItemList() {
		s.items[item.Name()] = s.settings.GetInt(itemKey(item.Name()), 0)
	}

	if s.starterAmount > 0 && !s.settings.Has(itemKey(s.starterItem)) {
		item := s.registry.Item(s.starterItem)
		if item == nil {
			slog.Warn("starter item not found in registry", "item", s.starterItem)
		} else {
			s.AddItem(item, s.starterAmount)
		}
	}

	return nil
}

// Save writes unlocks and every known item count, then persists the
// settings store.
func (s *Store) Save() error {
	stored := make(Unlocks, len(s.unlocked))
	for t, set := range s.unlocked {
		stored[t] = slices.Sorted(maps.Keys(set))
	}

	if err := s.settings.PutObject(unlocksKey, stored); err != nil {
		return fmt.Errorf("storing unlocks: %w", err)
	}

	for _, item := range s.registry.ItemList() {
		s.settings.PutInt(itemKey(item.Name()), s.items[item.Name()])
	}

	if err := s.settings.Save(); err != nil {
		return fmt.Errorf("saving progression: %w", err)
	}
	return nil
}

func (s *Store) fire(e events.Event) {
	if s.events != nil {
		s.events.Fire(e)
	}
}
