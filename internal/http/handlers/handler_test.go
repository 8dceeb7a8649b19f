package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetAccountID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := getAccountID(c); ok {
		t.Fatal("empty context must not yield an account id")
	}

	c.Set("account_id", int64(42))
	id, ok := getAccountID(c)
	if !ok || id != 42 {
		t.Fatalf("expected 42, got %d (ok=%v)", id, ok)
	}

	// JWT claims decoded via encoding/json arrive as float64
	c.Set("account_id", float64(7))
	id, ok = getAccountID(c)
	if !ok || id != 7 {
		t.Fatalf("expected 7, got %d (ok=%v)", id, ok)
	}

	c.Set("account_id", "not-a-number")
	if _, ok := getAccountID(c); ok {
		t.Fatal("non-numeric value must not yield an account id")
	}
}
