package staging

import (
	"fmt"
	"log/slog"

	"curator/internal/document"
	"curator/internal/entity"
	"curator/internal/logging"
	"curator/internal/services"
)

// stagePrefix marks temporary names assigned to displaced residents. The
// leading dot plus tilde keeps them out of any name a container could carry.
const stagePrefix = ".curator~stage~"

type renameRecord struct {
	e        *entity.Entity
	original string
}

// Lease tracks residents that were renamed out of the way of an import. It
// must be released exactly once on every control path out of the enclosing
// operation; pair Stage with a deferred Release.
type Lease struct {
	doc      *document.Document
	renamed  []renameRecord
	released bool
}

// Stage renames every resident entity whose (kind, name) collides with a
// name about to be imported. Temporary names are built from the private
// prefix plus the resident's store-assigned identity, so they are unique
// without any shared counter. All collisions are staged before the caller
// imports anything; if a temporary name is somehow taken, Stage restores
// what it already renamed and aborts before any import can happen.
func Stage(doc *document.Document, incoming []entity.Ref) (*Lease, error) {
	lease := &Lease{doc: doc}
	for _, ref := range incoming {
		resident, ok := doc.Get(ref.Kind, ref.Name)
		if !ok {
			continue
		}
		id, ok := doc.ID(resident)
		if !ok {
			lease.rollback()
			return nil, services.Wrap(services.ErrStagingCollision, "staging", "rename",
				fmt.Sprintf("resident %s %q has no identity", ref.Kind, ref.Name), nil)
		}
		tempName := fmt.Sprintf("%s%s~%d", stagePrefix, ref.Name, id)
		if _, taken := doc.Get(ref.Kind, tempName); taken {
			lease.rollback()
			return nil, services.Wrap(services.ErrStagingCollision, "staging", "rename",
				fmt.Sprintf("temporary name for %s %q already taken", ref.Kind, ref.Name), nil)
		}
		original := resident.Name
		if err := doc.Rename(resident, tempName); err != nil {
			lease.rollback()
			return nil, services.Wrap(services.ErrStagingCollision, "staging", "rename", original, err)
		}
		lease.renamed = append(lease.renamed, renameRecord{e: resident, original: original})
	}
	return lease, nil
}

// Count reports how many residents were displaced.
func (l *Lease) Count() int {
	if l == nil {
		return 0
	}
	return len(l.renamed)
}

// Release restores every staged entity to its original name. It is
// idempotent; only the first call does work. Individual restore failures are
// logged and do not stop the remaining restores.
func (l *Lease) Release(logger *slog.Logger) {
	if l == nil || l.released {
		return
	}
	l.released = true
	if logger == nil {
		logger = logging.NewNop()
	}
	// Restore in reverse so an entity staged twice under pathological input
	// unwinds in order.
	for i := len(l.renamed) - 1; i >= 0; i-- {
		record := l.renamed[i]
		if err := l.doc.Rename(record.e, record.original); err != nil {
			logger.Error("failed to restore staged entity name",
				logging.String(logging.FieldEntity, record.original),
				logging.String(logging.FieldKind, string(record.e.Kind)),
				logging.Error(err),
			)
		}
	}
	l.renamed = nil
}

func (l *Lease) rollback() {
	for i := len(l.renamed) - 1; i >= 0; i-- {
		record := l.renamed[i]
		_ = l.doc.Rename(record.e, record.original)
	}
	l.renamed = nil
	l.released = true
}
