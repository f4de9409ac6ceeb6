package governance

import "github.com/ortelius/governance-backend/model"

// ActivityTracker keeps per-identity participation counters. Records are
// created with zero counters the first time an identity is credited.
type ActivityTracker struct {
	records map[string]*model.ActivityRecord
}

// NewActivityTracker returns a tracker seeded with existing records.
func NewActivityTracker(seed map[string]model.ActivityRecord) *ActivityTracker {
	t := &ActivityTracker{records: make(map[string]*model.ActivityRecord, len(seed))}
	for id, rec := range seed {
		rec := rec
		rec.Identity = id
		t.records[id] = &rec
	}
	return t
}

func (t *ActivityTracker) touch(id string) *model.ActivityRecord {
	rec, ok := t.records[id]
	if !ok {
		rec = &model.ActivityRecord{Identity: id}
		t.records[id] = rec
	}
	return rec
}

// VoteCast credits one vote to id.
func (t *ActivityTracker) VoteCast(id string) {
	t.touch(id).VotesCast++
}

// ProposalCreated credits one created proposal to id.
func (t *ActivityTracker) ProposalCreated(id string) {
	t.touch(id).ProposalsCreated++
}

// ProposalExecuted credits one executed proposal to id.
func (t *ActivityTracker) ProposalExecuted(id string) {
	t.touch(id).ProposalsExecuted++
}

// Get returns the record for id, or a zero record if id was never credited.
func (t *ActivityTracker) Get(id string) model.ActivityRecord {
	if rec, ok := t.records[id]; ok {
		return *rec
	}
	return model.ActivityRecord{Identity: id}
}

// Lookup returns the record for id and whether one exists.
func (t *ActivityTracker) Lookup(id string) (model.ActivityRecord, bool) {
	rec, ok := t.records[id]
	if !ok {
		return model.ActivityRecord{}, false
	}
	return *rec, true
}

func (t *ActivityTracker) export() map[string]model.ActivityRecord {
	out := make(map[string]model.ActivityRecord, len(t.records))
	for id, rec := range t.records {
		out[id] = *rec
	}
	return out
}
