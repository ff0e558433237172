package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/store"
	"github.com/fieldline/syncbox/models"
)

// RuleSet parameterises conflict detection and auto-resolution. The zero
// value is not usable; construct via [DefaultRuleSet]. Tables with unusual
// shapes can override individual sets, the defaults cover the common
// line-of-business record shape.
type RuleSet struct {
	// IgnoredFields are never compared: identity and bookkeeping fields
	// whose disagreement carries no user intent.
	IgnoredFields map[string]struct{}

	// UserAuthoredFields is the merge allow-list: free-text fields where
	// the local edit is presumed to carry user work worth preserving.
	UserAuthoredFields map[string]struct{}

	// StatusPriority ranks workflow status values; a higher rank wins.
	// Values outside the map never auto-resolve.
	StatusPriority map[string]int
}

// DefaultRuleSet returns the standard rule set.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		IgnoredFields: map[string]struct{}{
			"id":           {},
			"created_at":   {},
			"updated_at":   {},
			"synced_at":    {},
			"_sync_status": {},
		},
		UserAuthoredFields: map[string]struct{}{
			"notes":         {},
			"description":   {},
			"remarks":       {},
			"comments":      {},
			"custom_fields": {},
		},
		StatusPriority: map[string]int{
			"draft":     1,
			"pending":   2,
			"active":    3,
			"approved":  4,
			"completed": 5,
		},
	}
}

// Resolver detects field-level conflicts between local and server copies of
// a record and resolves them, automatically where a deterministic rule
// applies and via explicit [models.ConflictResolution] decisions otherwise.
//
// Detection and auto-resolution are pure: same inputs, same outputs, no
// clock reads, no I/O. Only ApplyResolutions touches storage.
type Resolver struct {
	rules   RuleSet
	records store.RecordRepository
	queue   store.MutationQueueRepository
	logger  *logger.Logger

	now Clock
}

// NewResolver constructs a Resolver with the default rule set.
func NewResolver(records store.RecordRepository, queue store.MutationQueueRepository, logger *logger.Logger) *Resolver {
	return &Resolver{
		rules:   DefaultRuleSet(),
		records: records,
		queue:   queue,
		logger:  logger,
		now:     time.Now,
	}
}

// DetectConflicts compares paired local and server versions of the same
// record and returns one [models.ConflictItem] per differing non-ignored
// field. Equal versions produce no items. Fields present on only one side
// are compared against nil.
func (r *Resolver) DetectConflicts(table string, local, server models.Record) []models.ConflictItem {
	id := server.ID()
	if id == "" {
		id = local.ID()
	}

	fields := make(map[string]struct{}, len(local)+len(server))
	for f := range local {
		fields[f] = struct{}{}
	}
	for f := range server {
		fields[f] = struct{}{}
	}

	var conflicts []models.ConflictItem
	for field := range fields {
		if _, ignored := r.rules.IgnoredFields[field]; ignored {
			continue
		}

		lv, sv := local[field], server[field]
		if models.ValuesEqual(lv, sv) {
			continue
		}

		conflicts = append(conflicts, models.ConflictItem{
			ID:            id,
			Table:         table,
			Field:         field,
			LocalValue:    lv,
			ServerValue:   sv,
			LocalVersion:  local,
			ServerVersion: server,
		})
	}

	return conflicts
}

// AutoResolve applies the fixed rule order to a single field conflict and
// returns the winning side. ok is false when no rule applies and the
// conflict needs an explicit decision.
//
// Rule order, first match wins:
//  1. one side nil, the other present: the present side wins;
//  2. both numeric: the larger value wins;
//  3. date-like field (name contains "date" or ends in "_at"/"_on") with
//     two parseable timestamps: the later one wins;
//  4. status-like field (name contains "status") with both values ranked:
//     the higher rank wins.
func (r *Resolver) AutoResolve(item models.ConflictItem) (models.ResolutionChoice, bool) {
	lv, sv := item.LocalValue, item.ServerValue

	if lv == nil || sv == nil {
		if lv == nil {
			return models.ResolutionServer, true
		}
		return models.ResolutionLocal, true
	}

	if ln, lok := asNumber(lv); lok {
		if sn, sok := asNumber(sv); sok {
			if ln >= sn {
				return models.ResolutionLocal, true
			}
			return models.ResolutionServer, true
		}
	}

	if isDateField(item.Field) {
		lt, lok := asTime(lv)
		st, sok := asTime(sv)
		if lok && sok {
			if lt.After(st) {
				return models.ResolutionLocal, true
			}
			return models.ResolutionServer, true
		}
	}

	if isStatusField(item.Field) {
		lp, lok := r.statusRank(lv)
		sp, sok := r.statusRank(sv)
		if lok && sok {
			if lp > sp {
				return models.ResolutionLocal, true
			}
			return models.ResolutionServer, true
		}
	}

	return "", false
}

// ResolveRecord attempts to auto-resolve every field conflict of one
// record. When all fields resolve, it returns the full resolution: the
// server version overlaid with each locally-winning field. ok is false when
// any field needs a manual decision, in which case the record must not be
// touched.
func (r *Resolver) ResolveRecord(conflicts []models.ConflictItem) (models.ConflictResolution, bool) {
	if len(conflicts) == 0 {
		return models.ConflictResolution{}, false
	}

	merged := conflicts[0].ServerVersion.Clone()
	localWins := 0
	for _, item := range conflicts {
		choice, ok := r.AutoResolve(item)
		if !ok {
			return models.ConflictResolution{}, false
		}
		if choice == models.ResolutionLocal {
			merged[item.Field] = item.LocalValue
			localWins++
		}
	}

	resolution := models.ConflictResolution{
		ID:         conflicts[0].ID,
		Resolution: models.ResolutionMerged,
		MergedData: merged,
	}
	switch localWins {
	case 0:
		resolution.Resolution = models.ResolutionServer
		resolution.MergedData = nil
	case len(conflicts):
		resolution.Resolution = models.ResolutionLocal
		resolution.MergedData = nil
	}

	return resolution, true
}

// MergeVersions builds a merged record: the server version as the base,
// user-authored fields overlaid from the local version, and a fresh
// updated_at so the merge propagates as the newest write.
func (r *Resolver) MergeVersions(local, server models.Record) models.Record {
	merged := server.Clone()
	for field := range r.rules.UserAuthoredFields {
		if lv, ok := local[field]; ok {
			merged[field] = lv
		}
	}
	merged["updated_at"] = r.now().UTC().Format(time.RFC3339Nano)
	return merged
}

// ApplyResolutions applies explicit per-record decisions: the winning
// version overwrites the local copy, and for local/merged winners an update
// mutation is enqueued so the decision also reaches the remote store. For
// server winners the record's queued mutations are dropped instead, so the
// superseded local writes are never delivered.
// Failures are isolated per record; the pass never aborts early.
func (r *Resolver) ApplyResolutions(ctx context.Context, table string, conflicts []models.ConflictItem, resolutions []models.ConflictResolution) (applied, failed int) {
	byID := groupByID(conflicts)

	for _, res := range resolutions {
		items, known := byID[res.ID]
		if !known {
			r.logger.Warn().
				Str("func", "Resolver.ApplyResolutions").
				Str("record_id", res.ID).
				Msg("resolution for an unknown conflict, skipped")
			failed++
			continue
		}

		if err := r.applyOne(ctx, table, items[0], res); err != nil {
			r.logger.Error().
				Str("func", "Resolver.ApplyResolutions").
				Str("record_id", res.ID).
				Err(err).
				Msg("conflict resolution failed")
			failed++
			continue
		}
		applied++
	}

	return applied, failed
}

func (r *Resolver) applyOne(ctx context.Context, table string, item models.ConflictItem, res models.ConflictResolution) error {
	var winner models.Record
	propagate := true

	switch res.Resolution {
	case models.ResolutionServer:
		winner = item.ServerVersion.Clone()
		propagate = false
	case models.ResolutionLocal:
		winner = item.LocalVersion.Clone()
		winner["updated_at"] = r.now().UTC().Format(time.RFC3339Nano)
	case models.ResolutionMerged:
		winner = res.MergedData
		if winner == nil {
			winner = r.MergeVersions(item.LocalVersion, item.ServerVersion)
		}
	default:
		return fmt.Errorf("unknown resolution choice %q", res.Resolution)
	}

	if err := r.records.Put(ctx, table, res.ID, winner); err != nil {
		return fmt.Errorf("store winning version: %w", err)
	}

	if propagate {
		if _, err := r.queue.Enqueue(ctx, table, models.ActionUpdate, winner); err != nil {
			return fmt.Errorf("enqueue winning version: %w", err)
		}
		return nil
	}

	// A server winner supersedes the queued local writes for this record.
	// Left in the queue they would be pushed later in the same pass and
	// overwrite the resolution on the remote store.
	dropped, err := r.queue.RemoveForRecord(ctx, table, res.ID)
	if err != nil {
		return fmt.Errorf("drop superseded mutations: %w", err)
	}
	if dropped > 0 {
		r.logger.Debug().
			Str("func", "Resolver.applyOne").
			Str("table", table).
			Str("record_id", res.ID).
			Int("dropped", dropped).
			Msg("superseded mutations removed after server-side resolution")
	}

	return nil
}

// Summary aggregates a conflict list for display.
func (r *Resolver) Summary(conflicts []models.ConflictItem) models.ConflictSummary {
	summary := models.ConflictSummary{
		Total:   len(conflicts),
		ByTable: make(map[string]int),
		ByField: make(map[string]int),
	}

	for _, item := range conflicts {
		summary.ByTable[item.Table]++
		summary.ByField[item.Field]++
		if _, ok := r.AutoResolve(item); ok {
			summary.AutoResolvable++
		}
	}

	return summary
}

func (r *Resolver) statusRank(v any) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	rank, ok := r.rules.StatusPriority[strings.ToLower(s)]
	return rank, ok
}

func groupByID(conflicts []models.ConflictItem) map[string][]models.ConflictItem {
	byID := make(map[string][]models.ConflictItem)
	for _, item := range conflicts {
		byID[item.ID] = append(byID[item.ID], item)
	}
	return byID
}

// asNumber coerces the numeric shapes a JSON decode can produce.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isDateField(field string) bool {
	f := strings.ToLower(field)
	return strings.Contains(f, "date") || strings.HasSuffix(f, "_at") || strings.HasSuffix(f, "_on")
}

func isStatusField(field string) bool {
	return strings.Contains(strings.ToLower(field), "status")
}

// asTime parses the timestamp encodings seen in row payloads.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
