package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"curator/internal/entity"
	"curator/internal/services"
)

// SetCatalog writes the catalog field on the entity's asset metadata record.
// "Unassigned" is the all-zero UUID, never an empty string: the container
// format defines it that way. Entities without a record are rejected.
func SetCatalog(e *entity.Entity, id uuid.UUID) error {
	if e == nil || e.Asset == nil {
		name := "<nil>"
		if e != nil {
			name = e.Name
		}
		return services.Wrap(services.ErrNotFound, "catalog", "set catalog",
			fmt.Sprintf("entity %q is not an asset", name), nil)
	}
	e.Asset.CatalogID = id
	return nil
}

// SetTags replaces the asset's entire tag collection. Duplicates and
// empty or whitespace-only entries are dropped; remaining tags keep their
// input order.
func SetTags(e *entity.Entity, tags []string) error {
	if e == nil || e.Asset == nil {
		name := "<nil>"
		if e != nil {
			name = e.Name
		}
		return services.Wrap(services.ErrNotFound, "catalog", "set tags",
			fmt.Sprintf("entity %q is not an asset", name), nil)
	}
	e.Asset.Tags = entity.NormalizeTags(tags)
	return nil
}
