package document

import (
	"fmt"
	"sort"

	"curator/internal/entity"
)

// Document is the in-memory entity store the engine mutates: the stand-in
// for the host application's live document. It is not safe for concurrent
// use; all mutations must happen on one goroutine, matching the host's
// single document-mutation context.
type Document struct {
	entities map[entity.Kind]map[string]*entity.Entity
	ids      map[*entity.Entity]uint64
	nextID   uint64
}

// New returns an empty document.
func New() *Document {
	return &Document{
		entities: make(map[entity.Kind]map[string]*entity.Entity),
		ids:      make(map[*entity.Entity]uint64),
		nextID:   1,
	}
}

// List returns the names of all entities of the given kind, sorted.
func (d *Document) List(kind entity.Kind) []string {
	byName := d.entities[kind]
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up an entity by kind and name.
func (d *Document) Get(kind entity.Kind, name string) (*entity.Entity, bool) {
	e, ok := d.entities[kind][name]
	return e, ok
}

// Resolve implements entity.Resolver.
func (d *Document) Resolve(ref entity.Ref) (*entity.Entity, bool) {
	return d.Get(ref.Kind, ref.Name)
}

// Add inserts an entity. Names must be unique within a kind at any instant;
// a duplicate is an error, not a silent replace, because collision handling
// belongs to the staging layer.
func (d *Document) Add(e *entity.Entity) error {
	if e == nil {
		return fmt.Errorf("add nil entity")
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("add entity %q: unknown kind %q", e.Name, e.Kind)
	}
	byName := d.entities[e.Kind]
	if byName == nil {
		byName = make(map[string]*entity.Entity)
		d.entities[e.Kind] = byName
	}
	if _, exists := byName[e.Name]; exists {
		return fmt.Errorf("entity %s %q already exists", e.Kind, e.Name)
	}
	byName[e.Name] = e
	d.ids[e] = d.nextID
	d.nextID++
	return nil
}

// Rename changes an entity's name, keeping per-kind uniqueness.
func (d *Document) Rename(e *entity.Entity, newName string) error {
	byName := d.entities[e.Kind]
	if byName == nil || byName[e.Name] != e {
		return fmt.Errorf("rename %s %q: not resident", e.Kind, e.Name)
	}
	if newName == e.Name {
		return nil
	}
	if _, exists := byName[newName]; exists {
		return fmt.Errorf("rename %s %q: name %q already taken", e.Kind, e.Name, newName)
	}
	delete(byName, e.Name)
	e.Name = newName
	byName[newName] = e
	return nil
}

// Remove deletes an entity from the document. Removing an absent entity is a
// no-op so cleanup paths can run unconditionally.
func (d *Document) Remove(e *entity.Entity) {
	if e == nil {
		return
	}
	byName := d.entities[e.Kind]
	if byName != nil && byName[e.Name] == e {
		delete(byName, e.Name)
	}
	delete(d.ids, e)
}

// ID returns the store-assigned identity of a resident entity. Identities
// are unique for the document's lifetime and never reused, which is what
// makes them safe as staging rename suffixes.
func (d *Document) ID(e *entity.Entity) (uint64, bool) {
	id, ok := d.ids[e]
	return id, ok
}

// Len reports the total number of resident entities.
func (d *Document) Len() int {
	return len(d.ids)
}

// All returns every resident entity, ordered by kind then name.
func (d *Document) All() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(d.ids))
	for _, kind := range entity.Kinds() {
		for _, name := range d.List(kind) {
			out = append(out, d.entities[kind][name])
		}
	}
	return out
}
