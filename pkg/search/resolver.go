package search

// Resolver computes, for a changed entity, the set of directly searchable
// entities whose index document must be refreshed. Results may contain
// duplicates when multiple propagation paths lead to the same ancestor;
// deduplication happens in the synchronizer.
type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve yields the entity itself when it is directly searchable, plus all
// directly searchable ancestors reached through the parent chain when it is
// indirectly searchable. Both branches run for dual-capability types.
func (r *Resolver) Resolve(entity Entity) ([]Direct, error) {
	var targets []Direct
	if err := r.walk(entity, nil, &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// ResolveParents yields only the directly searchable ancestors of entity,
// never the entity itself. Used for deletions: the deleted entity's own
// document is removed outright, but its parents still need documents that no
// longer carry its content.
func (r *Resolver) ResolveParents(entity Entity) ([]Direct, error) {
	if !r.registry.Capabilities(entity.SearchType()).Indirect() {
		return nil, nil
	}
	path := []string{refKey(entity)}
	var targets []Direct
	for _, parent := range entity.(Indirect).ParentSearchEntities() {
		if parent == nil {
			continue
		}
		if err := r.walk(parent, path, &targets); err != nil {
			return nil, err
		}
	}
	return targets, nil
}

// walk recurses through the parent chain. The current recursion path guards
// against cycles: an entity reappearing on its own ancestor path fails the
// walk. Reaching the same ancestor through two distinct paths (a diamond) is
// legal and yields it twice.
func (r *Resolver) walk(entity Entity, path []string, targets *[]Direct) error {
	key := refKey(entity)
	for _, ancestor := range path {
		if ancestor == key {
			return &CyclicParentGraphError{Path: append(append([]string{}, path...), key)}
		}
	}

	capability := r.registry.Capabilities(entity.SearchType())
	if capability.Direct() {
		*targets = append(*targets, entity.(Direct))
	}
	if capability.Indirect() {
		path = append(path, key)
		for _, parent := range entity.(Indirect).ParentSearchEntities() {
			if parent == nil {
				continue
			}
			if err := r.walk(parent, path, targets); err != nil {
				return err
			}
		}
	}
	return nil
}

func refKey(entity Entity) string {
	return entity.SearchType() + "/" + entity.SearchID()
}
