package httpadapter

import (
	"net"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func recorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// withRequestID reuses X-Request-ID from the client or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(observability.WithRequestID(r.Context(), reqID)))
	})
}

// withLogging wraps a handle and logs every request.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recorder(w)

		next.ServeHTTP(rec, r)

		observability.LoggerFromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

// withMetrics counts requests and observes latency per known path.
func withMetrics(m *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := recorder(w)

			next.ServeHTTP(rec, r)

			path := metricPath(r.URL.Path)
			m.Requests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
			m.Latency.WithLabelValues(path).Observe(time.Since(start).Seconds())
		})
	}
}

func metricPath(p string) string {
	switch p {
	case "/", "/health", "/metrics", pathInterpret, pathReplies, pathStyle:
		return p
	default:
		return "other"
	}
}

// withCORS lets a browser front-end on one of origins call the API.
func withCORS(origins []string) func(http.Handler) http.Handler {
	anyOrigin := len(origins) == 0 || slices.Contains(origins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case anyOrigin:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// withRateLimit rejects clients that exceed their per-IP budget.
func withRateLimit(pool *limiterPool, m *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if pool == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !pool.Allow(clientIP(r)) {
				m.Limited.Inc()
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Detail: "Te veel verzoeken, probeer het zo opnieuw."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// chainMiddlewares applies multiple middlewares in order.
func chainMiddlewares(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Per-client rate limiter pool.
type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

type limiterPool struct {
	mu    sync.Mutex
	m     map[string]*limiterEntry
	rps   float64
	burst int
	ttl   time.Duration
}

// newLimiterPool returns nil when limiting is disabled.
func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &limiterPool{
		m:     make(map[string]*limiterEntry),
		rps:   rps,
		burst: burst,
		ttl:   10 * time.Minute,
	}
}

// Allow reports whether key may make a request now. Idle entries are evicted
// lazily on access.
func (p *limiterPool) Allow(key string) bool {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	for k, e := range p.m {
		if now.Sub(e.lastSeen) > p.ttl {
			delete(p.m, k)
		}
	}

	e, ok := p.m[key]
	if !ok {
		e = &limiterEntry{l: rate.NewLimiter(rate.Limit(p.rps), p.burst)}
		p.m[key] = e
	}
	e.lastSeen = now
	return e.l.AllowN(now, 1)
}
