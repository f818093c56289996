package deps

import (
	"curator/internal/entity"
)

// Closure partitions the resource-bearing dependencies of a root entity by
// kind. Order within each slice is unspecified; callers only need the union.
type Closure struct {
	Images      []*entity.Entity
	Fonts       []*entity.Entity
	Sounds      []*entity.Entity
	Clips       []*entity.Entity
	Volumetrics []*entity.Entity
}

// All returns every resource entity in the closure.
func (c Closure) All() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(c.Images)+len(c.Fonts)+len(c.Sounds)+len(c.Clips)+len(c.Volumetrics))
	out = append(out, c.Images...)
	out = append(out, c.Fonts...)
	out = append(out, c.Sounds...)
	out = append(out, c.Clips...)
	out = append(out, c.Volumetrics...)
	return out
}

// Collect walks the entity graph from root and returns the resource-bearing
// dependencies, direct and transitive. The walk never mutates state.
// References to entities the resolver cannot find are ignored, as are kinds
// the walker does not understand. A visited set keyed by entity identity
// guarantees termination on cyclic node graph references.
func Collect(root *entity.Entity, resolver entity.Resolver) Closure {
	var closure Closure
	visit(root, resolver, make(map[*entity.Entity]struct{}), func(e *entity.Entity) {
		switch e.Kind {
		case entity.KindImage:
			closure.Images = append(closure.Images, e)
		case entity.KindFont:
			closure.Fonts = append(closure.Fonts, e)
		case entity.KindSound:
			closure.Sounds = append(closure.Sounds, e)
		case entity.KindClip:
			closure.Clips = append(closure.Clips, e)
		case entity.KindVolumetric:
			closure.Volumetrics = append(closure.Volumetrics, e)
		}
	})
	return closure
}

// CollectClosure returns every entity reachable from the given roots,
// including the roots themselves. The container writer uses this to
// auto-include the serialized closure of a written entity set.
func CollectClosure(roots []*entity.Entity, resolver entity.Resolver) []*entity.Entity {
	visited := make(map[*entity.Entity]struct{})
	out := make([]*entity.Entity, 0, len(roots))
	for _, root := range roots {
		visit(root, resolver, visited, func(e *entity.Entity) {
			out = append(out, e)
		})
	}
	return out
}

func visit(e *entity.Entity, resolver entity.Resolver, visited map[*entity.Entity]struct{}, fn func(*entity.Entity)) {
	if e == nil {
		return
	}
	if _, seen := visited[e]; seen {
		return
	}
	visited[e] = struct{}{}
	fn(e)
	for _, ref := range e.References() {
		if dep, ok := resolver.Resolve(ref); ok {
			visit(dep, resolver, visited, fn)
		}
	}
}
