package search

import (
	"context"

	"go.uber.org/zap"
)

// ChangeSet captures the entities created, updated and deleted within one
// transaction. The three sets are disjoint.
type ChangeSet struct {
	Created []Entity
	Updated []Entity
	Deleted []Entity
}

func (cs ChangeSet) Empty() bool {
	return len(cs.Created) == 0 && len(cs.Updated) == 0 && len(cs.Deleted) == 0
}

// Writer is the subset of the index store the synchronizer needs to flush a
// commit.
type Writer interface {
	AddOrUpdate(ctx context.Context, typeName string, id string, doc Document) error
	Remove(ctx context.Context, typeName string, id string) error
}

type docRef struct {
	typeName string
	id       string
}

type stagedWrite struct {
	ref docRef
	doc Document
}

// CommitContext carries the staged index writes of one transaction from the
// pre-commit to the post-commit phase. It is created by BeforeCommit,
// consumed exactly once by AfterCommit and must not outlive the transaction.
type CommitContext struct {
	pending []stagedWrite
	deleted []docRef
}

func (cc *CommitContext) Empty() bool {
	return cc == nil || (len(cc.pending) == 0 && len(cc.deleted) == 0)
}

// Synchronizer coordinates the two transactional checkpoints. BeforeCommit
// renders all affected documents while the object graph is still loaded;
// AfterCommit flushes them once the relational commit has succeeded. The
// index is never touched before the commit.
type Synchronizer struct {
	registry *Registry
	resolver *Resolver
	store    Writer
}

func NewSynchronizer(registry *Registry, store Writer) *Synchronizer {
	return &Synchronizer{
		registry: registry,
		resolver: NewResolver(registry),
		store:    store,
	}
}

// BeforeCommit resolves and renders the documents affected by the change set.
// Rendering happens here because the entity graph may no longer be navigable
// after the transaction ends. No index writes are performed. An error aborts
// the commit.
func (s *Synchronizer) BeforeCommit(changes ChangeSet) (*CommitContext, error) {
	cc := &CommitContext{}

	for _, entity := range changes.Created {
		if err := s.stage(cc, entity); err != nil {
			return nil, err
		}
	}
	for _, entity := range changes.Updated {
		if err := s.stage(cc, entity); err != nil {
			return nil, err
		}
	}

	for _, entity := range changes.Deleted {
		// A deleted entity's own document is removed, not refreshed. Only
		// its parents still need documents without the deleted content.
		targets, err := s.resolver.ResolveParents(entity)
		if err != nil {
			return nil, err
		}
		for _, target := range targets {
			cc.pending = append(cc.pending, stagedWrite{
				ref: docRef{typeName: target.SearchType(), id: target.SearchID()},
				doc: target.SearchEntry(),
			})
		}
		if s.registry.Capabilities(entity.SearchType()).Direct() {
			cc.deleted = append(cc.deleted, docRef{typeName: entity.SearchType(), id: entity.SearchID()})
		}
	}

	return cc, nil
}

// AfterCommit flushes the staged writes. It must only be called after the
// relational commit succeeded. Each (type, id) pair is written at most once;
// a deletion wins over a staged add/update for the same pair. Index write
// failures are logged and counted, never returned: the relational data is
// already durable and the index self-heals on the next write or a reindex.
func (s *Synchronizer) AfterCommit(ctx context.Context, cc *CommitContext) {
	if cc == nil {
		return
	}

	deleted := make(map[docRef]bool, len(cc.deleted))
	for _, ref := range cc.deleted {
		deleted[ref] = true
	}

	flushed := make(map[docRef]bool, len(cc.pending))
	for _, write := range cc.pending {
		if deleted[write.ref] || flushed[write.ref] {
			continue
		}
		flushed[write.ref] = true
		if err := s.store.AddOrUpdate(ctx, write.ref.typeName, write.ref.id, write.doc); err != nil {
			zap.S().Errorw(
				"Search index update failed, index is stale until the next write or reindex",
				"type", write.ref.typeName,
				"id", write.ref.id,
				"error", err,
			)
			indexWriteFailures.WithLabelValues(write.ref.typeName).Inc()
			continue
		}
		indexWrites.WithLabelValues(write.ref.typeName).Inc()
	}

	for _, ref := range cc.deleted {
		if err := s.store.Remove(ctx, ref.typeName, ref.id); err != nil {
			zap.S().Errorw(
				"Search index removal failed, index is stale until the next reindex",
				"type", ref.typeName,
				"id", ref.id,
				"error", err,
			)
			indexWriteFailures.WithLabelValues(ref.typeName).Inc()
			continue
		}
		indexRemovals.WithLabelValues(ref.typeName).Inc()
	}

	// The context is spent. Clearing it makes a double AfterCommit harmless.
	cc.pending = nil
	cc.deleted = nil
}

func (s *Synchronizer) stage(cc *CommitContext, entity Entity) error {
	targets, err := s.resolver.Resolve(entity)
	if err != nil {
		return err
	}
	for _, target := range targets {
		cc.pending = append(cc.pending, stagedWrite{
			ref: docRef{typeName: target.SearchType(), id: target.SearchID()},
			doc: target.SearchEntry(),
		})
	}
	return nil
}
