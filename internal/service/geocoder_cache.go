package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ignatzorin/marketplace-backend/internal/goroutine"
	"github.com/ignatzorin/marketplace-backend/internal/models"
)

// DefaultGeocoderCacheTTL время жизни ответа геокодера в кэше.
const DefaultGeocoderCacheTTL = 24 * time.Hour

type cacheEntry struct {
	location  *models.GeoLocation
	expiresAt time.Time
}

// CachedGeocoder кэширует ответы геокодера по почтовому индексу, включая
// ответ "индекс неизвестен". Ошибки не кэшируются.
type CachedGeocoder struct {
	next  Geocoder
	ttl   time.Duration
	clock func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// NewCachedGeocoder оборачивает next кэшем. Устаревшие записи удаляются
// фоновой горутиной до отмены ctx.
func NewCachedGeocoder(ctx context.Context, next Geocoder, ttl time.Duration) *CachedGeocoder {
	if ttl <= 0 {
		ttl = DefaultGeocoderCacheTTL
	}
	g := &CachedGeocoder{
		next:  next,
		ttl:   ttl,
		clock: time.Now,
		cache: make(map[string]cacheEntry),
	}
	goroutine.SafeGoWithContext(ctx, "geocoder-cache-cleanup", g.cleanup)
	return g
}

// LookupZip возвращает координаты индекса из кэша или от геокодера.
func (g *CachedGeocoder) LookupZip(ctx context.Context, zip string) (*models.GeoLocation, error) {
	key := strings.TrimSpace(zip)

	g.mu.RLock()
	entry, ok := g.cache[key]
	g.mu.RUnlock()
	if ok && g.clock().Before(entry.expiresAt) {
		return entry.location, nil
	}

	loc, err := g.next.LookupZip(ctx, key)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.cache[key] = cacheEntry{location: loc, expiresAt: g.clock().Add(g.ttl)}
	g.mu.Unlock()
	return loc, nil
}

// Invalidate удаляет индекс из кэша.
func (g *CachedGeocoder) Invalidate(zip string) {
	g.mu.Lock()
	delete(g.cache, strings.TrimSpace(zip))
	g.mu.Unlock()
}

func (g *CachedGeocoder) evictExpired() {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clock()
	for key, entry := range g.cache {
		if !now.Before(entry.expiresAt) {
			delete(g.cache, key)
		}
	}
}

func (g *CachedGeocoder) cleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.evictExpired()
		}
	}
}
