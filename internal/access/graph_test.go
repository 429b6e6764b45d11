package access

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGraph counts how often each adjacency query hits the backend.
type countingGraph struct {
	fakeGraph
	calls int
}

func (g *countingGraph) ManagersOfDoctor(ctx context.Context, id uuid.UUID) (IDSet, error) {
	g.calls++
	return g.fakeGraph.ManagersOfDoctor(ctx, id)
}

func TestCachedGraphServesFromCache(t *testing.T) {
	doctorID := uuid.New()
	managerID := uuid.New()

	inner := &countingGraph{fakeGraph: *newFakeGraph()}
	inner.managersOfDoctor[doctorID] = NewIDSet(managerID)

	g := NewCachedGraph(inner, time.Minute, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		set, err := g.ManagersOfDoctor(ctx, doctorID)
		require.NoError(t, err)
		assert.True(t, set.Contains(managerID))
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedGraphInvalidate(t *testing.T) {
	doctorID := uuid.New()

	inner := &countingGraph{fakeGraph: *newFakeGraph()}
	inner.managersOfDoctor[doctorID] = NewIDSet()

	g := NewCachedGraph(inner, time.Minute, time.Minute)
	ctx := context.Background()

	_, err := g.ManagersOfDoctor(ctx, doctorID)
	require.NoError(t, err)

	// New edge appears only after invalidation.
	managerID := uuid.New()
	inner.managersOfDoctor[doctorID] = NewIDSet(managerID)

	set, err := g.ManagersOfDoctor(ctx, doctorID)
	require.NoError(t, err)
	assert.False(t, set.Contains(managerID))

	g.Invalidate()

	set, err = g.ManagersOfDoctor(ctx, doctorID)
	require.NoError(t, err)
	assert.True(t, set.Contains(managerID))
	assert.Equal(t, 2, inner.calls)
}

func TestIDSet(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	set := NewIDSet(a)

	assert.True(t, set.Contains(a))
	assert.False(t, set.Contains(b))
	assert.False(t, NewIDSet().Contains(a))
}
