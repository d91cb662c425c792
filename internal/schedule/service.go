package schedule

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"cudays/internal/model"
	"cudays/internal/record"
)

// Service owns the local event/category cache and its synchronization
// against the versioned remote feed. It is the single logical owner of the
// cache in a process: every mutation goes through its lock, and at most one
// sync round is in flight at a time.
type Service struct {
	store    RecordStore
	feed     Feed
	notifier Notifier
	logger   Logger
	clock    Clock
	idgen    IDGenerator

	mu         sync.RWMutex
	events     *EventStore
	categories *CategoryStore
	version    int64
	syncing    bool
}

// NewService creates a Service with empty day buckets for the given program
// days. Call Load before anything else.
func NewService(store RecordStore, feed Feed, notifier Notifier, days []model.Day, order EventOrder, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:      store,
		feed:       feed,
		notifier:   notifier,
		logger:     logger,
		clock:      clock,
		idgen:      idgen,
		events:     NewEventStore(days, order, logger),
		categories: NewCategoryStore(),
	}
}

// Load populates the cache from the record store: categories and events
// first, then the persisted selection list resolved against what actually
// loaded. A selected identity that no longer resolves is silently dropped.
// Individual malformed records are skipped and logged; Load only fails when
// the store itself does.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	versionValues, err := s.store.Get(KeyVersion)
	if err != nil {
		return fmt.Errorf("reading version: %w", err)
	}
	s.version = parseVersion(versionValues, s.logger)

	categoryLines, err := s.store.Get(KeyCategories)
	if err != nil {
		return fmt.Errorf("reading categories: %w", err)
	}
	for _, line := range categoryLines {
		c, err := record.DecodeCategory(line)
		if err != nil {
			s.logger.Warn("skipping saved category", "err", err)
			continue
		}
		s.categories.Upsert(c)
	}

	eventLines, err := s.store.Get(KeyEvents)
	if err != nil {
		return fmt.Errorf("reading events: %w", err)
	}
	for _, line := range eventLines {
		e, err := record.DecodeEvent(line)
		if err != nil {
			s.logger.Warn("skipping saved event", "err", err)
			continue
		}
		s.events.Upsert(e)
	}

	addedValues, err := s.store.Get(KeyAddedPKs)
	if err != nil {
		return fmt.Errorf("reading selection: %w", err)
	}
	for _, v := range addedValues {
		pk, err := strconv.Atoi(v)
		if err != nil {
			s.logger.Warn("skipping saved selection entry", "value", v)
			continue
		}
		if err := s.events.Select(pk); err != nil {
			// The event is gone from the cache; the selection entry lapses.
			s.logger.Debug("dropping selection for unknown event", "pk", pk)
		}
	}

	s.logger.Info("cache loaded",
		"events", s.events.Len(),
		"categories", s.categories.Len(),
		"selected", len(s.events.SelectedIDs()),
		"version", s.version,
	)
	return nil
}

// SyncResult summarizes one completed sync round.
type SyncResult struct {
	Version           int64
	ChangedEvents     int
	DeletedEvents     int
	ChangedCategories int
	DeletedCategories int

	// ChangedSelected are the changed events whose identity was selected
	// before the round started; they were handed to the notifier.
	ChangedSelected []model.Event
}

// Sync runs one synchronization round: ask the feed for everything since
// the local version, apply the delta, reconcile the selection overlay,
// persist, and report changed selected events to the notifier.
//
// A round requested while another is outstanding returns ErrSyncInProgress
// without touching anything. A feed failure or malformed response leaves
// the cache and the persisted version exactly as they were; the next round
// retries from the same version, which is safe because delta application
// is idempotent.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	s.syncing = true
	since := s.version
	preSelected := make(map[int]bool)
	for _, pk := range s.events.SelectedIDs() {
		preSelected[pk] = true
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	roundID := s.idgen.New()
	started := s.clock.Now()
	s.logger.Info("sync started", "round", roundID, "since", since)

	// The feed call runs outside the cache lock: it may block on the
	// network and reads/selection must stay available meanwhile.
	delta, err := s.feed.Updates(ctx, since)
	if err != nil {
		s.logger.Error("sync failed", "round", roundID, "err", err)
		return nil, fmt.Errorf("fetching updates since %d: %w", since, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Fixed application order. Categories before events, upserts before
	// deletions within each kind: if an identity ever appeared in both
	// lists, the deletion wins.
	for _, c := range delta.ChangedCategories {
		s.categories.Upsert(c)
	}
	for _, pk := range delta.DeletedCategoryPks {
		s.categories.Remove(pk)
	}
	for _, e := range delta.ChangedEvents {
		s.events.Upsert(e)
	}
	for _, pk := range delta.DeletedEventPks {
		s.events.Remove(pk)
	}

	// Re-resolve the pre-round selection. Per-upsert preservation already
	// carried selections through updates; this pass additionally restores
	// entries the overlay never saw, e.g. after a fresh load where the
	// event only now arrived through the delta.
	for pk := range preSelected {
		if s.events.IsKnown(pk) {
			s.events.Select(pk)
		}
	}

	var changedSelected []model.Event
	for _, e := range delta.ChangedEvents {
		if preSelected[e.Pk] && s.events.IsKnown(e.Pk) {
			changedSelected = append(changedSelected, e)
		}
	}

	if err := s.persistLocked(); err != nil {
		// The version stays at its previous value, so the next round
		// re-fetches this delta; reapplying it is a no-op.
		s.logger.Error("sync persist failed", "round", roundID, "err", err)
		return nil, fmt.Errorf("persisting sync round: %w", err)
	}
	if err := s.store.Set(KeyVersion, []string{strconv.FormatInt(delta.Version, 10)}); err != nil {
		s.logger.Error("sync version persist failed", "round", roundID, "err", err)
		return nil, fmt.Errorf("persisting version: %w", err)
	}
	s.version = delta.Version

	// Reminder upkeep: drop reminders for deleted events the user had
	// selected, reschedule the changed selected ones, then announce the
	// batch. Fire-and-forget.
	for _, pk := range delta.DeletedEventPks {
		if preSelected[pk] {
			s.notifier.Cancel(pk)
		}
	}
	for _, e := range changedSelected {
		s.notifier.Schedule(e)
	}
	if len(changedSelected) > 0 {
		s.notifier.BatchChanged(changedSelected)
	}

	result := &SyncResult{
		Version:           delta.Version,
		ChangedEvents:     len(delta.ChangedEvents),
		DeletedEvents:     len(delta.DeletedEventPks),
		ChangedCategories: len(delta.ChangedCategories),
		DeletedCategories: len(delta.DeletedCategoryPks),
		ChangedSelected:   changedSelected,
	}
	s.logger.Info("sync complete",
		"round", roundID,
		"version", delta.Version,
		"changed_events", result.ChangedEvents,
		"deleted_events", result.DeletedEvents,
		"changed_categories", result.ChangedCategories,
		"deleted_categories", result.DeletedCategories,
		"changed_selected", len(changedSelected),
		"duration_ms", s.clock.Now().Sub(started).Milliseconds(),
	)
	return result, nil
}

// Select adds a loaded event to the user's agenda and persists the
// selection list. Fails with ErrNotFound if the event is not loaded.
func (s *Service) Select(pk int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.events.Select(pk); err != nil {
		return err
	}
	return s.persistSelectionLocked()
}

// Deselect removes an event from the user's agenda and persists the
// selection list. Deselecting an absent identity is a no-op.
func (s *Service) Deselect(pk int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events.Deselect(pk)
	return s.persistSelectionLocked()
}

// Version returns the last committed feed version.
func (s *Service) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Days returns the program days in configuration order.
func (s *Service) Days() []model.Day {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.Days()
}

// EventsForDay returns all events of the given day in display order.
func (s *Service) EventsForDay(day model.Day) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.SortedForDay(day)
}

// Agenda returns the user's selected events across all program days, in
// display order.
func (s *Service) Agenda() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, day := range s.events.Days() {
		out = append(out, s.events.SelectedForDay(day)...)
	}
	return out
}

// Event returns the loaded event with the given identity.
func (s *Service) Event(pk int) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.Get(pk)
}

// IsSelected reports whether the identity is on the user's agenda.
func (s *Service) IsSelected(pk int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.IsSelected(pk)
}

// Colleges returns the college categories ordered by name.
func (s *Service) Colleges() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.SortedColleges()
}

// Types returns the event-type categories ordered by name.
func (s *Service) Types() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.SortedTypes()
}

// FirstRun reports whether this installation has ever completed a load.
func (s *Service) FirstRun() (bool, error) {
	values, err := s.store.Get(KeyLaunchedBefore)
	if err != nil {
		return false, fmt.Errorf("reading first-run marker: %w", err)
	}
	return len(values) == 0, nil
}

// MarkLaunched records that the first load has completed.
func (s *Service) MarkLaunched() error {
	if err := s.store.Set(KeyLaunchedBefore, []string{"true"}); err != nil {
		return fmt.Errorf("writing first-run marker: %w", err)
	}
	return nil
}

// persistLocked writes events, categories and the selection list. The
// caller persists the version afterwards: records must be durable before
// the version is considered committed.
func (s *Service) persistLocked() error {
	events := s.events.All()
	sort.Slice(events, func(i, j int) bool { return events[i].Pk < events[j].Pk })
	eventLines := make([]string, len(events))
	for i, e := range events {
		eventLines[i] = record.EncodeEvent(e)
	}
	if err := s.store.Set(KeyEvents, eventLines); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}

	categories := s.categories.All()
	sort.Slice(categories, func(i, j int) bool { return categories[i].Pk < categories[j].Pk })
	categoryLines := make([]string, len(categories))
	for i, c := range categories {
		categoryLines[i] = record.EncodeCategory(c)
	}
	if err := s.store.Set(KeyCategories, categoryLines); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	return s.persistSelectionLocked()
}

// persistSelectionLocked writes the selected identity list.
func (s *Service) persistSelectionLocked() error {
	pks := s.events.SelectedIDs()
	sort.Ints(pks)
	values := make([]string, len(pks))
	for i, pk := range pks {
		values[i] = strconv.Itoa(pk)
	}
	if err := s.store.Set(KeyAddedPKs, values); err != nil {
		return fmt.Errorf("writing selection: %w", err)
	}
	return nil
}

// parseVersion reads the persisted version; an absent or unreadable value
// means version 0, which makes the next sync fetch everything.
func parseVersion(values []string, logger Logger) int64 {
	if len(values) == 0 {
		return 0
	}
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		logger.Warn("unreadable saved version, starting from 0", "value", values[0])
		return 0
	}
	return v
}
