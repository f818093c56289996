package entity

import (
	"fmt"
	"strings"
)

// Kind identifies the datablock type of an entity. Names are unique per kind
// within a document, not globally.
type Kind string

const (
	KindObject     Kind = "object"
	KindMaterial   Kind = "material"
	KindNodeGraph  Kind = "nodegraph"
	KindImage      Kind = "image"
	KindFont       Kind = "font"
	KindSound      Kind = "sound"
	KindClip       Kind = "clip"
	KindVolumetric Kind = "volumetric"
	KindWorld      Kind = "world"
	KindScene      Kind = "scene"
	KindCollection Kind = "collection"
	KindCurve      Kind = "curve"
	KindArmature   Kind = "armature"
	KindAction     Kind = "action"
	KindBrush      Kind = "brush"
)

// Kinds lists every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindObject, KindMaterial, KindNodeGraph, KindImage, KindFont,
		KindSound, KindClip, KindVolumetric, KindWorld, KindScene,
		KindCollection, KindCurve, KindArmature, KindAction, KindBrush,
	}
}

// ParseKind converts a string into a Kind, case-insensitively.
func ParseKind(value string) (Kind, error) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	for _, kind := range Kinds() {
		if kind == normalized {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", value)
}

// Valid reports whether the kind is part of the supported set.
func (k Kind) Valid() bool {
	for _, kind := range Kinds() {
		if kind == k {
			return true
		}
	}
	return false
}

// HasResource reports whether entities of this kind carry externally stored
// resource bytes (the kinds the resource packer cares about).
func (k Kind) HasResource() bool {
	switch k {
	case KindImage, KindFont, KindSound, KindClip, KindVolumetric:
		return true
	default:
		return false
	}
}
