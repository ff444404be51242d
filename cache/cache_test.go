package cache

import (
	"testing"

	"github.com/gkobilansky/landing-page-report/models"
)

func TestKey_Deterministic(t *testing.T) {
	cats := []string{"cta", "whitespace"}
	a := Key("https://example.com", 1366, 768, cats)
	b := Key("https://example.com", 1366, 768, cats)
	if a != b {
		t.Error("identical inputs must produce identical keys")
	}

	if Key("https://example.com", 1366, 768, cats) == Key("https://example.com", 375, 812, cats) {
		t.Error("viewport must be part of the key")
	}
	if Key("https://example.com", 1366, 768, cats) == Key("https://example.com", 1366, 768, []string{"cta"}) {
		t.Error("categories must be part of the key")
	}
	if Key("https://example.com", 1366, 768, cats) == Key("https://example.org", 1366, 768, cats) {
		t.Error("url must be part of the key")
	}
}

func TestCache_HitAndMiss(t *testing.T) {
	c := New(10)
	key := Key("https://example.com", 1366, 768, nil)
	resp := &models.AnalyzeResponse{Success: true}

	if _, hit := c.Get(key, 60000); hit {
		t.Error("empty cache reported a hit")
	}

	c.Set(key, resp)

	got, hit := c.Get(key, 60000)
	if !hit {
		t.Fatal("expected a hit for a fresh entry")
	}
	if got != resp {
		t.Error("cache returned a different response")
	}
}

func TestCache_MaxAgeZeroDisablesLookup(t *testing.T) {
	c := New(10)
	key := Key("https://example.com", 1366, 768, nil)
	c.Set(key, &models.AnalyzeResponse{Success: true})

	if _, hit := c.Get(key, 0); hit {
		t.Error("maxAge 0 must bypass the cache")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(2)
	c.Set("a", &models.AnalyzeResponse{})
	c.Set("b", &models.AnalyzeResponse{})
	c.Set("c", &models.AnalyzeResponse{})

	hits := 0
	for _, k := range []string{"a", "b", "c"} {
		if _, hit := c.Get(k, 60000); hit {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("expected capacity to hold, got %d live entries", hits)
	}
}
