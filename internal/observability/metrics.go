package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// BookmarkMutations counts bookmark set mutations by operation and outcome.
	// Outcome "noop" means the pair was already in the desired state.
	BookmarkMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_bookmark_mutations_total",
		Help: "Total number of bookmark add/remove operations",
	}, []string{"operation", "outcome"})

	// CacheRequests counts cache-aside lookups by result (hit/miss/error).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_requests_total",
		Help: "Total number of cache-aside lookups",
	}, []string{"result"})
)
