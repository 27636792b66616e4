package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"
)

const (
	snapshotCacheKey     = "snapshot"
	snapshotCleanupEvery = 10 * time.Minute
)

// DataSource supplies the full sale and client collections.
type DataSource interface {
	ListSales(ctx context.Context) ([]models.Sale, error)
	ListClients(ctx context.Context) ([]models.Client, error)
}

// Snapshot is a frozen copy of both collections. Holders must not modify it.
type Snapshot struct {
	Sales    []models.Sale
	Clients  []models.Client
	LoadedAt time.Time
}

// SnapshotService serves the analytics snapshot, reloading it from the
// source at most once per TTL.
type SnapshotService struct {
	source DataSource
	ttl    time.Duration
	cache  *cache.Cache
	mu     sync.Mutex

	// genMu guards generation and orders cache writes against Invalidate.
	genMu      sync.Mutex
	generation uint64
}

func NewSnapshotService(source DataSource, ttl time.Duration) *SnapshotService {
	return &SnapshotService{
		source: source,
		ttl:    ttl,
		cache:  cache.New(ttl, snapshotCleanupEvery),
	}
}

// Load returns the cached snapshot, or reads both collections when it has
// expired or been invalidated. A TTL <= 0 disables caching.
func (s *SnapshotService) Load(ctx context.Context) (*Snapshot, error) {
	if snap, ok := s.cached(); ok {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another caller may have reloaded while we waited
	if snap, ok := s.cached(); ok {
		return snap, nil
	}

	gen := s.currentGeneration()
	start := time.Now()
	sales, err := s.source.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des ventes: %w", err)
	}
	clients, err := s.source.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des clients: %w", err)
	}

	snap := &Snapshot{Sales: sales, Clients: clients, LoadedAt: time.Now()}
	if s.ttl > 0 {
		s.store(snap, gen)
	}

	utils.Logger.Debug().
		Int("sales", len(sales)).
		Int("clients", len(clients)).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot loaded")
	return snap, nil
}

// Invalidate drops the cached snapshot; the next Load reads the source again.
// A load already in flight still answers its caller but is not cached.
func (s *SnapshotService) Invalidate() {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.generation++
	s.cache.Delete(snapshotCacheKey)
}

func (s *SnapshotService) currentGeneration() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generation
}

// store caches snap unless an invalidation happened since gen was read.
func (s *SnapshotService) store(snap *Snapshot, gen uint64) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.generation != gen {
		utils.Logger.Debug().Msg("snapshot invalidated during load, not cached")
		return
	}
	s.cache.Set(snapshotCacheKey, snap, s.ttl)
}

func (s *SnapshotService) cached() (*Snapshot, bool) {
	if s.ttl <= 0 {
		return nil, false
	}
	v, found := s.cache.Get(snapshotCacheKey)
	if !found {
		return nil, false
	}
	snap, ok := v.(*Snapshot)
	return snap, ok
}
