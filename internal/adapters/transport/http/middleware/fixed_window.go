package middleware

import (
	"net"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// KeyFunc extracts the client-identifying key a window is counted
// against. Alternate keys (account id, API key) can be substituted
// without touching the limiter itself.
type KeyFunc func(c *gin.Context) string

// ClientIPKey keys windows by the remote host address.
func ClientIPKey(c *gin.Context) string {
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

type window struct {
	count int
	start time.Time
}

// NewFixedWindowPerKey caps requests per key to max within a fixed
// window. The count rolls over lazily: a key's window resets on the
// first request after the window's end, not via a background sweep.
// Stale entries are evicted from the LRU table periodically.
func NewFixedWindowPerKey(
	max int,
	windowSize time.Duration,
	cacheSize int,
	keyFn KeyFunc,
	rejected prometheus.Counter,
) gin.HandlerFunc {

	if keyFn == nil {
		keyFn = ClientIPKey
	}

	windows, _ := lru.New[string, *window](cacheSize)
	var mu sync.Mutex

	go func() {
		ticker := time.NewTicker(windowSize)
		for range ticker.C {
			mu.Lock()
			for _, key := range windows.Keys() {
				if w, ok := windows.Peek(key); ok && time.Since(w.start) > windowSize {
					windows.Remove(key)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		key := keyFn(c)
		now := time.Now()

		mu.Lock()
		w, ok := windows.Get(key)
		if !ok || now.Sub(w.start) >= windowSize {
			w = &window{start: now}
			windows.Add(key, w)
		}
		w.count++
		over := w.count > max
		mu.Unlock()

		if over {
			if rejected != nil {
				rejected.Inc()
			}
			c.AbortWithStatusJSON(429, gin.H{"error": "Too many requests, please try again later."})
			return
		}
		c.Next()
	}
}
