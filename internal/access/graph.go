package access

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IDSet is a set of user IDs; membership is the only property consumers rely on.
type IDSet map[uuid.UUID]struct{}

// NewIDSet builds a set from the given IDs.
func NewIDSet(ids ...uuid.UUID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of the set.
func (s IDSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Graph answers adjacency queries over the doctor/patient/assistant/manager
// relationship edges. Every access-control decision traverses it.
type Graph interface {
	ManagersOfDoctor(ctx context.Context, doctorID uuid.UUID) (IDSet, error)
	ManagersOfAssistant(ctx context.Context, assistantID uuid.UUID) (IDSet, error)
	DoctorsOfPatient(ctx context.Context, patientID uuid.UUID) (IDSet, error)
	AssistantsOfManager(ctx context.Context, managerID uuid.UUID) (IDSet, error)
}

// CachedGraph decorates a Graph with a short-lived lookup cache. Edge
// creation must call Invalidate so new relationships take effect immediately.
type CachedGraph struct {
	inner Graph
	cache *cache.Cache
}

func NewCachedGraph(inner Graph, ttl, cleanup time.Duration) *CachedGraph {
	return &CachedGraph{
		inner: inner,
		cache: cache.New(ttl, cleanup),
	}
}

func (g *CachedGraph) lookup(ctx context.Context, key string, fetch func() (IDSet, error)) (IDSet, error) {
	if v, ok := g.cache.Get(key); ok {
		return v.(IDSet), nil
	}
	set, err := fetch()
	if err != nil {
		return nil, err
	}
	g.cache.Set(key, set, cache.DefaultExpiration)
	return set, nil
}

func (g *CachedGraph) ManagersOfDoctor(ctx context.Context, doctorID uuid.UUID) (IDSet, error) {
	return g.lookup(ctx, "dm:"+doctorID.String(), func() (IDSet, error) {
		return g.inner.ManagersOfDoctor(ctx, doctorID)
	})
}

func (g *CachedGraph) ManagersOfAssistant(ctx context.Context, assistantID uuid.UUID) (IDSet, error) {
	return g.lookup(ctx, "am:"+assistantID.String(), func() (IDSet, error) {
		return g.inner.ManagersOfAssistant(ctx, assistantID)
	})
}

func (g *CachedGraph) DoctorsOfPatient(ctx context.Context, patientID uuid.UUID) (IDSet, error) {
	return g.lookup(ctx, "dp:"+patientID.String(), func() (IDSet, error) {
		return g.inner.DoctorsOfPatient(ctx, patientID)
	})
}

func (g *CachedGraph) AssistantsOfManager(ctx context.Context, managerID uuid.UUID) (IDSet, error) {
	return g.lookup(ctx, "ma:"+managerID.String(), func() (IDSet, error) {
		return g.inner.AssistantsOfManager(ctx, managerID)
	})
}

// Invalidate drops all cached adjacency sets.
func (g *CachedGraph) Invalidate() {
	g.cache.Flush()
}
