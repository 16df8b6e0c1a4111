package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(max int, window time.Duration, keyFn KeyFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewFixedWindowPerKey(max, window, 100, keyFn, nil))
	r.POST("/login", func(c *gin.Context) { c.Status(200) })
	return r
}

func doPost(r *gin.Engine, addr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = addr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestFixedWindow_QuotaBoundary(t *testing.T) {
	r := limitedRouter(5, time.Minute, nil)

	for i := 1; i <= 5; i++ {
		if code := doPost(r, "1.2.3.4:12345"); code != 200 {
			t.Fatalf("request %d want 200, got %d", i, code)
		}
	}
	if code := doPost(r, "1.2.3.4:12345"); code != 429 {
		t.Fatalf("6th request want 429, got %d", code)
	}
	// still inside the same window
	if code := doPost(r, "1.2.3.4:12345"); code != 429 {
		t.Fatalf("7th request want 429, got %d", code)
	}
}

func TestFixedWindow_Rollover(t *testing.T) {
	window := 20 * time.Millisecond
	r := limitedRouter(1, window, nil)

	if code := doPost(r, "1.2.3.4:12345"); code != 200 {
		t.Fatalf("first request want 200, got %d", code)
	}
	if code := doPost(r, "1.2.3.4:12345"); code != 429 {
		t.Fatalf("second request want 429, got %d", code)
	}

	time.Sleep(window + 5*time.Millisecond)
	if code := doPost(r, "1.2.3.4:12345"); code != 200 {
		t.Fatalf("request after rollover want 200, got %d", code)
	}
}

func TestFixedWindow_KeysIndependent(t *testing.T) {
	r := limitedRouter(1, time.Minute, nil)

	if code := doPost(r, "10.0.0.1:1111"); code != 200 {
		t.Fatalf("host A first request must pass, got %d", code)
	}
	if code := doPost(r, "10.0.0.2:2222"); code != 200 {
		t.Fatalf("host B first request must pass independently, got %d", code)
	}
	if code := doPost(r, "10.0.0.1:3333"); code != 429 {
		t.Fatalf("host A second request want 429, got %d", code)
	}
}

func TestFixedWindow_PluggableKey(t *testing.T) {
	byHeader := func(c *gin.Context) string { return c.GetHeader("X-Account") }
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewFixedWindowPerKey(1, time.Minute, 100, byHeader, nil))
	r.POST("/login", func(c *gin.Context) { c.Status(200) })

	do := func(account string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		req.Header.Set("X-Account", account)
		req.RemoteAddr = "1.2.3.4:1"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("ann"); code != 200 {
		t.Fatalf("ann first want 200, got %d", code)
	}
	if code := do("bob"); code != 200 {
		t.Fatalf("bob first want 200, got %d", code)
	}
	if code := do("ann"); code != 429 {
		t.Fatalf("ann second want 429, got %d", code)
	}
}
