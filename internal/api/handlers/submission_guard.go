package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
	"github.com/Bukassi600104/ultraclean/backend/pkg/config"
)

// SubmissionGuard rate limits public form posts per client and drops
// repeated identical submissions. Shared state lives in the cache when one
// is configured; otherwise, or when the cache errors, in-process state is used.
type SubmissionGuard struct {
	cache       providers.CacheProvider
	limit       int
	window      time.Duration
	dedupWindow time.Duration
	local       *localRateLimiter
	deduper     *localDeduper
}

// NewSubmissionGuard creates a guard. cache may be nil.
func NewSubmissionGuard(cache providers.CacheProvider, cfg config.RateLimitConfig) *SubmissionGuard {
	limit := cfg.LeadSubmissions
	if limit <= 0 {
		limit = 5
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Hour
	}
	dedupWindow := cfg.DedupWindow
	if dedupWindow <= 0 {
		dedupWindow = 10 * time.Minute
	}

	return &SubmissionGuard{
		cache:       cache,
		limit:       limit,
		window:      window,
		dedupWindow: dedupWindow,
		local:       newLocalRateLimiter(),
		deduper:     newLocalDeduper(),
	}
}

// Allow counts one submission for key and reports whether it is within the limit
func (g *SubmissionGuard) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if g.cache != nil {
		count, ttl, err := g.cache.Increment(ctx, key, g.window)
		if err == nil {
			if count > int64(g.limit) {
				return false, ttl
			}
			return true, 0
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("rate limit cache unavailable, using local limiter")
	}
	return g.local.allow(key, g.limit, g.window)
}

// Claim marks a fingerprint as seen. It returns false when the same
// fingerprint was claimed within the dedup window.
func (g *SubmissionGuard) Claim(ctx context.Context, key string) bool {
	if g.cache != nil {
		stored, err := g.cache.SetIfAbsent(ctx, key, []byte("1"), g.dedupWindow)
		if err == nil {
			return stored
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("dedup cache unavailable, using local deduper")
	}
	return !g.deduper.seen(key, g.dedupWindow)
}

// Release forgets a claimed fingerprint so a failed submission can be retried
func (g *SubmissionGuard) Release(ctx context.Context, key string) {
	if g.cache != nil {
		if err := g.cache.Delete(ctx, key); err == nil {
			return
		}
	}
	g.deduper.forget(key)
}

// localRateLimiter keeps one token bucket per key: a burst of limit that
// refills at limit per window.
type localRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= 10000 {
			l.pruneLocked(now, limit)
		}
		limiter = rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, window
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// pruneLocked drops buckets that have fully refilled
func (l *localRateLimiter) pruneLocked(now time.Time, limit int) {
	for key, limiter := range l.limiters {
		if limiter.TokensAt(now) >= float64(limit) {
			delete(l.limiters, key)
		}
	}
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string, window time.Duration) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	if len(d.entries) >= 10000 {
		for k, expiresAt := range d.entries {
			if !now.Before(expiresAt) {
				delete(d.entries, k)
			}
		}
	}
	d.entries[key] = now.Add(window)
	return false
}

func (d *localDeduper) forget(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, key)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// fingerprint hashes normalized form values into a dedup key
func fingerprint(values ...string) string {
	normalized := make([]string, len(values))
	for i, v := range values {
		normalized[i] = strings.Join(strings.Fields(strings.ToLower(v)), " ")
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}
