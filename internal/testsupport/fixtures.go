package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"curator/internal/container"
	"curator/internal/document"
	"curator/internal/entity"
)

// NewImage builds an image entity whose pixel data lives at path.
func NewImage(name, path string) *entity.Entity {
	return &entity.Entity{
		Kind: entity.KindImage,
		Name: name,
		Resource: &entity.Resource{
			Storage: entity.StorageExternal,
			Path:    path,
		},
	}
}

// NewNodeGraph builds a node graph entity referencing the given images.
func NewNodeGraph(name string, images ...string) *entity.Entity {
	graph := &entity.Entity{Kind: entity.KindNodeGraph, Name: name}
	for _, image := range images {
		graph.Nodes = append(graph.Nodes, entity.Node{Image: image})
	}
	return graph
}

// NewMaterial builds a material entity backed by the named node graph.
func NewMaterial(name, graph string) *entity.Entity {
	return &entity.Entity{Kind: entity.KindMaterial, Name: name, Graph: graph}
}

// NewObject builds an object entity with the given material slots.
func NewObject(name string, materials ...string) *entity.Entity {
	return &entity.Entity{Kind: entity.KindObject, Name: name, Slots: materials}
}

// MarkAsset attaches an asset record to the entity and returns it.
func MarkAsset(e *entity.Entity, catalogID uuid.UUID, tags ...string) *entity.Entity {
	e.Asset = &entity.Metadata{CatalogID: catalogID, Tags: tags}
	return e
}

// AssetChain builds the canonical four-entity dependency chain
// object -> material -> node graph -> image, with the object marked as an
// asset and a real image file on disk under dir.
func AssetChain(t testing.TB, dir, name string) []*entity.Entity {
	t.Helper()

	imagePath := filepath.Join(dir, name+"_diffuse.png")
	if err := os.WriteFile(imagePath, []byte("not a real png but big enough to embed"), 0o644); err != nil {
		t.Fatalf("write image fixture: %v", err)
	}
	image := NewImage(name+"_diffuse", imagePath)
	graph := NewNodeGraph(name+"_nodes", image.Name)
	material := NewMaterial(name+"_mat", graph.Name)
	object := MarkAsset(NewObject(name, material.Name), uuid.Nil)
	return []*entity.Entity{object, material, graph, image}
}

// NewDocument builds a document preloaded with the given entities.
func NewDocument(t testing.TB, entities ...*entity.Entity) *document.Document {
	t.Helper()

	doc := document.New()
	for _, e := range entities {
		if err := doc.Add(e); err != nil {
			t.Fatalf("add %s %q: %v", e.Kind, e.Name, err)
		}
	}
	return doc
}

// WriteContainer serializes the entities to path through the real writer.
func WriteContainer(t testing.TB, path string, entities ...*entity.Entity) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	doc := document.New()
	for _, e := range entities {
		if err := doc.Add(e); err != nil {
			t.Fatalf("add %s %q: %v", e.Kind, e.Name, err)
		}
	}
	if err := container.Write(path, entities, doc); err != nil {
		t.Fatalf("write container %s: %v", path, err)
	}
}
