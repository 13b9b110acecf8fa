package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	require.NoError(t, registry.Register(&directEntity{typ: "device"}, &IndexDefinition{}))
	require.NoError(t, registry.Register(&directEntity{typ: "platform"}, &IndexDefinition{}))
	require.NoError(t, registry.Register(&indirectEntity{typ: "attachment"}, nil))
	require.NoError(t, registry.Register(&indirectEntity{typ: "contact_role"}, nil))
	require.NoError(t, registry.Register(&dualEntity{typ: "contact"}, &IndexDefinition{}))
	return registry
}

func keysOf(targets []Direct) []string {
	keys := make([]string, 0, len(targets))
	for _, target := range targets {
		keys = append(keys, refKey(target))
	}
	return keys
}

func TestResolveDirectEntityYieldsItself(t *testing.T) {
	resolver := NewResolver(testRegistry(t))
	device := &directEntity{typ: "device", id: "1"}

	targets, err := resolver.Resolve(device)
	require.NoError(t, err)
	assert.Equal(t, []string{"device/1"}, keysOf(targets))
}

func TestResolveIndirectChainReachesAllAncestors(t *testing.T) {
	resolver := NewResolver(testRegistry(t))
	device := &directEntity{typ: "device", id: "1"}
	attachment := &indirectEntity{typ: "attachment", id: "7", parents: []Entity{device}}

	targets, err := resolver.Resolve(attachment)
	require.NoError(t, err)
	assert.Equal(t, []string{"device/1"}, keysOf(targets))
}

func TestResolveDualCapabilityRunsBothBranches(t *testing.T) {
	resolver := NewResolver(testRegistry(t))
	device := &directEntity{typ: "device", id: "1"}
	platform := &directEntity{typ: "platform", id: "2"}
	contact := &dualEntity{typ: "contact", id: "3", parents: []Entity{device, platform}}

	targets, err := resolver.Resolve(contact)
	require.NoError(t, err)
	assert.Equal(t, []string{"contact/3", "device/1", "platform/2"}, keysOf(targets))
}

func TestResolveDiamondYieldsDuplicates(t *testing.T) {
	// Deduplication is the synchronizer's job, not the resolver's.
	resolver := NewResolver(testRegistry(t))
	device := &directEntity{typ: "device", id: "1"}
	left := &indirectEntity{typ: "attachment", id: "10", parents: []Entity{device}}
	right := &indirectEntity{typ: "attachment", id: "11", parents: []Entity{device}}
	role := &indirectEntity{typ: "contact_role", id: "12", parents: []Entity{left, right}}

	targets, err := resolver.Resolve(role)
	require.NoError(t, err)
	assert.Equal(t, []string{"device/1", "device/1"}, keysOf(targets))
}

func TestResolveSkipsNilParents(t *testing.T) {
	resolver := NewResolver(testRegistry(t))
	attachment := &indirectEntity{typ: "attachment", id: "7", parents: []Entity{nil}}

	targets, err := resolver.Resolve(attachment)
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestResolveDetectsCycle(t *testing.T) {
	resolver := NewResolver(testRegistry(t))
	first := &indirectEntity{typ: "attachment", id: "1"}
	second := &indirectEntity{typ: "attachment", id: "2", parents: []Entity{first}}
	first.parents = []Entity{second}

	_, err := resolver.Resolve(first)
	require.Error(t, err)

	var cycleErr *CyclicParentGraphError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"attachment/1", "attachment/2", "attachment/1"}, cycleErr.Path)
}

func TestResolveParentsSkipsTheEntityItself(t *testing.T) {
	// Deletions refresh the parents but never re-render the deleted entity.
	resolver := NewResolver(testRegistry(t))
	device := &directEntity{typ: "device", id: "1"}
	contact := &dualEntity{typ: "contact", id: "3", parents: []Entity{device}}

	targets, err := resolver.ResolveParents(contact)
	require.NoError(t, err)
	assert.Equal(t, []string{"device/1"}, keysOf(targets))
}

func TestResolveParentsOfPureDirectEntityIsEmpty(t *testing.T) {
	resolver := NewResolver(testRegistry(t))
	device := &directEntity{typ: "device", id: "1"}

	targets, err := resolver.ResolveParents(device)
	require.NoError(t, err)
	assert.Empty(t, targets)
}
