// Package registry implements the entry name/id/type table and reference
// counting described for the data log's entry registry: Start assigns or
// reuses an id, Finish releases one registration, and both (along with
// SetMetadata) decide whether a control record needs to be emitted.
//
// Registry itself does not encode or emit anything — it hands the caller
// a decision (emit: yes/no, id, conflict: yes/no) and leaves record
// construction and buffering to the caller. This mirrors the entry
// registry/producer split in SYSTEM OVERVIEW: the registry only owns the
// two maps, guarded by the same mutex the producer API already holds.
package registry

// entry holds the per-name registration: its assigned id and declared type.
type entry struct {
	id  uint32
	typ string
}

// Registry maps entry names to ids/types and tracks how many outstanding
// Start calls (not yet balanced by Finish) exist for each id. It is not
// safe for concurrent use on its own; callers serialize access externally.
type Registry struct {
	byName   map[string]entry
	liveByID map[uint32]uint32
	lastID   uint32
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName:   make(map[string]entry),
		liveByID: make(map[uint32]uint32),
	}
}

// StartResult reports what the caller must do after a Start call.
type StartResult struct {
	ID uint32 // 0 on type conflict

	// Emit is true when a Start control record must be written (this is
	// the first live registration for this id).
	Emit bool

	// Conflict is true when name still has live registrations under a
	// different type; the existing registration is left untouched.
	Conflict bool
}

// Start registers name (assigning a new id on first sight) and increments
// its live count. Returns ID == 0 and Conflict == true if name still has
// live registrations under a different type. A name whose live count has
// dropped to 0 keeps its id and takes the requested type on its next Start.
func (r *Registry) Start(name, typ string) StartResult {
	e, known := r.byName[name]
	wasLive := known && r.liveByID[e.id] > 0
	if wasLive && e.typ != typ {
		return StartResult{ID: 0, Conflict: true}
	}
	if !known {
		r.lastID++
		e = entry{id: r.lastID, typ: typ}
		r.byName[name] = e
	} else if !wasLive {
		e.typ = typ
		r.byName[name] = e
	}
	r.liveByID[e.id]++
	return StartResult{ID: e.id, Emit: !wasLive}
}

// Finish decrements id's live count. Returns true if a Finish control
// record must be written (the live count reached 0). No-op (returns false)
// if id is 0 or already has no live registrations.
func (r *Registry) Finish(id uint32) bool {
	if id == 0 {
		return false
	}
	count, ok := r.liveByID[id]
	if !ok || count == 0 {
		return false
	}
	count--
	if count == 0 {
		delete(r.liveByID, id)
		return true
	}
	r.liveByID[id] = count
	return false
}

