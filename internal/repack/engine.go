package repack

import (
	"log/slog"

	"curator/internal/config"
	"curator/internal/document"
	"curator/internal/entity"
	"curator/internal/library"
	"curator/internal/logging"
	"curator/internal/staging"
)

// Engine drives repackaging operations against one live document. It is
// single-threaded: batch operations process one container at a time because
// imports mutate the shared document namespace and staging must be globally
// serialized.
type Engine struct {
	doc    *document.Document
	cfg    *config.Config
	logger *slog.Logger
	trash  *library.Trash
}

// New constructs an engine around the given live document.
func New(cfg *config.Config, doc *document.Document, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	engineLogger := logger.With(logging.String(logging.FieldComponent, "repack"))
	trashDir := ""
	if cfg != nil {
		trashDir = cfg.Library.TrashDir
	}
	return &Engine{
		doc:    doc,
		cfg:    cfg,
		logger: engineLogger,
		trash:  library.NewTrash(trashDir, engineLogger),
	}
}

// Document exposes the engine's live document, mainly for callers that
// populate it before a Save.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// importSession pairs a staging lease with the entities imported under it.
// Close removes the imports and releases the lease; it is safe to call on
// every control path, including after a partial failure.
type importSession struct {
	doc      *document.Document
	lease    *staging.Lease
	imported []*entity.Entity
	logger   *slog.Logger
}

// beginImport stages name collisions for the incoming entities and then
// imports them into the live document under their original names. Staging
// strictly precedes the first Add so a collision failure aborts before any
// import.
func (e *Engine) beginImport(incoming []*entity.Entity) (*importSession, error) {
	refs := make([]entity.Ref, 0, len(incoming))
	for _, ent := range incoming {
		refs = append(refs, ent.Ref())
	}
	lease, err := staging.Stage(e.doc, refs)
	if err != nil {
		return nil, err
	}
	session := &importSession{doc: e.doc, lease: lease, logger: e.logger}
	for _, ent := range incoming {
		if err := e.doc.Add(ent); err != nil {
			session.Close()
			return nil, err
		}
		session.imported = append(session.imported, ent)
	}
	return session, nil
}

// Close removes every imported entity and restores staged names, in that
// order, exactly once.
func (s *importSession) Close() {
	if s == nil {
		return
	}
	for _, ent := range s.imported {
		s.doc.Remove(ent)
	}
	s.imported = nil
	s.lease.Release(s.logger)
}
