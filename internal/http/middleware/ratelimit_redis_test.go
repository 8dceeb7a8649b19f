package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func initTestRedis(t *testing.T) {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	pass := os.Getenv("REDIS_PASSWORD")
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	InitRedisRateLimiter(addr, pass, db)
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	initTestRedis(t)

	// small window for test
	w := 2 * time.Second
	max := 2

	r := gin.New()
	r.POST("/auth", RedisRateLimit(max, w), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	client := &http.Client{}

	// do max allowed requests
	for i := 0; i < max; i++ {
		req, _ := http.NewRequest("POST", srv.URL+"/auth", nil)
		res, err := client.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if res.StatusCode != 200 {
			t.Fatalf("expected 200 got %d", res.StatusCode)
		}
	}

	// next request should be blocked
	req, _ := http.NewRequest("POST", srv.URL+"/auth", nil)
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 429 {
		t.Fatalf("expected 429 got %d", res.StatusCode)
	}
}

// TapRateLimit keys on the authenticated account, so one account hitting
// its batch quota must not block another.
func TestTapRateLimitPerAccount(t *testing.T) {
	initTestRedis(t)

	w := 2 * time.Second
	maxBatches := 2
	base := time.Now().UnixNano()

	r := gin.New()
	r.POST("/tap", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-Test-Account"), 10, 64)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Set("account_id", id)
	}, TapRateLimit(maxBatches, w), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	tap := func(account int64) int {
		req, _ := http.NewRequest("POST", srv.URL+"/tap", nil)
		req.Header.Set("X-Test-Account", strconv.FormatInt(account, 10))
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		return res.StatusCode
	}

	first, second := base, base+1
	for i := 0; i < maxBatches; i++ {
		if code := tap(first); code != 200 {
			t.Fatalf("batch %d: expected 200 got %d", i, code)
		}
	}
	if code := tap(first); code != 429 {
		t.Fatalf("expected 429 after quota, got %d", code)
	}
	// a different account still has its full quota
	if code := tap(second); code != 200 {
		t.Fatalf("second account should not be blocked, got %d", code)
	}
}

func TestTapRateLimitRequiresAccount(t *testing.T) {
	initTestRedis(t)

	r := gin.New()
	r.POST("/tap", TapRateLimit(10, time.Minute), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	res, err := http.Post(srv.URL+"/tap", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without account in context, got %d", res.StatusCode)
	}
}

// Without Redis configured the limiter must let traffic through.
func TestTapRateLimitFailOpenWithoutRedis(t *testing.T) {
	saved := redisClient
	redisClient = nil
	defer func() { redisClient = saved }()

	r := gin.New()
	r.POST("/tap", TapRateLimit(1, time.Minute), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < 3; i++ {
		res, err := http.Post(srv.URL+"/tap", "application/json", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != 200 {
			t.Fatalf("fail-open violated: got %d", res.StatusCode)
		}
	}
}
