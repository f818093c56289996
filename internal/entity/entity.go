package entity

// Ref addresses another entity by kind and name.
type Ref struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

// Storage describes where a resource entity's bytes currently live.
type Storage string

const (
	// StorageExternal means the bytes live in a file referenced by Path.
	StorageExternal Storage = "external"
	// StorageEmbedded means the bytes are carried inline in Data.
	StorageEmbedded Storage = "embedded"
	// StorageGenerated means the entity has no backing file at all.
	StorageGenerated Storage = "generated"
)

// BuiltinPath is the placeholder path used by resources that ship with the
// host application. It never refers to a real file and is never packed.
const BuiltinPath = "<builtin>"

// Resource holds the storage state of a resource-bearing entity.
type Resource struct {
	Storage Storage `json:"storage"`
	Path    string  `json:"path,omitempty"`
	Data    []byte  `json:"data,omitempty"`
}

// Node is a single node inside a node graph. Only the reference fields the
// dependency walker inspects are modeled.
type Node struct {
	Image string `json:"image,omitempty"`
	Clip  string `json:"clip,omitempty"`
	Graph string `json:"graph,omitempty"`
}

// Modifier is an object modifier that may reference a node graph or texture.
type Modifier struct {
	Type    string `json:"type"`
	Graph   string `json:"graph,omitempty"`
	Texture string `json:"texture,omitempty"`
}

// Strip is a sequencer strip on a scene referencing a sound or clip.
type Strip struct {
	Sound string `json:"sound,omitempty"`
	Clip  string `json:"clip,omitempty"`
}

// Entity is a named, typed record. Which reference fields are populated
// depends on the kind; unknown combinations are ignored rather than rejected.
type Entity struct {
	Name     string    `json:"name"`
	Kind     Kind      `json:"kind"`
	Asset    *Metadata `json:"asset,omitempty"`
	Resource *Resource `json:"resource,omitempty"`

	// Object fields.
	Slots     []string   `json:"slots,omitempty"` // material slot names
	Modifiers []Modifier `json:"modifiers,omitempty"`
	Fonts     []string   `json:"fonts,omitempty"` // text object font refs
	Sound     string     `json:"sound,omitempty"` // speaker object sound ref

	// Material and world fields.
	Graph string `json:"graph,omitempty"`

	// Node graph fields.
	Nodes  []Node   `json:"nodes,omitempty"`
	Nested []string `json:"nested,omitempty"`

	// Scene fields.
	World  string  `json:"world,omitempty"`
	Strips []Strip `json:"strips,omitempty"`

	// Collection fields.
	Members []Ref `json:"members,omitempty"`
}

// Ref returns the entity's own address.
func (e *Entity) Ref() Ref {
	return Ref{Kind: e.Kind, Name: e.Name}
}

// IsAsset reports whether the entity carries an asset metadata record.
func (e *Entity) IsAsset() bool {
	return e != nil && e.Asset != nil
}

// References enumerates the direct outgoing references of the entity,
// following the same edges as the host's dependency resolution. Fields that
// do not apply to the entity's kind are skipped.
func (e *Entity) References() []Ref {
	if e == nil {
		return nil
	}
	refs := make([]Ref, 0, 4)
	add := func(kind Kind, name string) {
		if name != "" {
			refs = append(refs, Ref{Kind: kind, Name: name})
		}
	}
	switch e.Kind {
	case KindObject, KindCurve:
		for _, slot := range e.Slots {
			add(KindMaterial, slot)
		}
		for _, mod := range e.Modifiers {
			add(KindNodeGraph, mod.Graph)
			add(KindImage, mod.Texture)
		}
		for _, font := range e.Fonts {
			add(KindFont, font)
		}
		add(KindSound, e.Sound)
	case KindMaterial, KindWorld:
		add(KindNodeGraph, e.Graph)
	case KindNodeGraph:
		for _, node := range e.Nodes {
			add(KindImage, node.Image)
			add(KindClip, node.Clip)
			add(KindNodeGraph, node.Graph)
		}
		for _, nested := range e.Nested {
			add(KindNodeGraph, nested)
		}
	case KindScene:
		add(KindWorld, e.World)
		for _, strip := range e.Strips {
			add(KindSound, strip.Sound)
			add(KindClip, strip.Clip)
		}
	case KindCollection:
		refs = append(refs, e.Members...)
	}
	return refs
}

// RewriteReferences redirects every outgoing reference matching old to
// newName, walking the same edges as References. It reports whether any
// field changed. Renaming an entity must be followed by a rewrite pass over
// its siblings or their name-based references dangle.
func (e *Entity) RewriteReferences(old Ref, newName string) bool {
	if e == nil || old.Name == "" || old.Name == newName {
		return false
	}
	changed := false
	rewrite := func(kind Kind, name *string) {
		if kind == old.Kind && *name == old.Name {
			*name = newName
			changed = true
		}
	}
	switch e.Kind {
	case KindObject, KindCurve:
		for i := range e.Slots {
			rewrite(KindMaterial, &e.Slots[i])
		}
		for i := range e.Modifiers {
			rewrite(KindNodeGraph, &e.Modifiers[i].Graph)
			rewrite(KindImage, &e.Modifiers[i].Texture)
		}
		for i := range e.Fonts {
			rewrite(KindFont, &e.Fonts[i])
		}
		rewrite(KindSound, &e.Sound)
	case KindMaterial, KindWorld:
		rewrite(KindNodeGraph, &e.Graph)
	case KindNodeGraph:
		for i := range e.Nodes {
			rewrite(KindImage, &e.Nodes[i].Image)
			rewrite(KindClip, &e.Nodes[i].Clip)
			rewrite(KindNodeGraph, &e.Nodes[i].Graph)
		}
		for i := range e.Nested {
			rewrite(KindNodeGraph, &e.Nested[i])
		}
	case KindScene:
		rewrite(KindWorld, &e.World)
		for i := range e.Strips {
			rewrite(KindSound, &e.Strips[i].Sound)
			rewrite(KindClip, &e.Strips[i].Clip)
		}
	case KindCollection:
		for i := range e.Members {
			if e.Members[i] == old {
				e.Members[i].Name = newName
				changed = true
			}
		}
	}
	return changed
}

// Clone returns a deep copy of the entity. Containers hand out clones so a
// load never aliases file-backed state with live document state.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Asset = e.Asset.Clone()
	if e.Resource != nil {
		res := *e.Resource
		res.Data = append([]byte(nil), e.Resource.Data...)
		clone.Resource = &res
	}
	clone.Slots = append([]string(nil), e.Slots...)
	clone.Modifiers = append([]Modifier(nil), e.Modifiers...)
	clone.Fonts = append([]string(nil), e.Fonts...)
	clone.Nodes = append([]Node(nil), e.Nodes...)
	clone.Nested = append([]string(nil), e.Nested...)
	clone.Strips = append([]Strip(nil), e.Strips...)
	clone.Members = append([]Ref(nil), e.Members...)
	return &clone
}

// Resolver looks up live entities by reference. The live document implements
// this; tests may substitute a map-backed resolver.
type Resolver interface {
	Resolve(ref Ref) (*Entity, bool)
}
