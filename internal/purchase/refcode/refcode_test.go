package refcode

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewReferenceFormat(t *testing.T) {
	ref := NewReference(time.Now())

	if !strings.HasPrefix(ref, "WYF") {
		t.Fatalf("expected WYF prefix, got %q", ref)
	}
	// prefix + 26-char ULID
	if len(ref) != 3+26 {
		t.Fatalf("expected reference length 29, got %d (%q)", len(ref), ref)
	}
}

func TestNewReferenceUniqueUnderConcurrency(t *testing.T) {
	const n = 200
	now := time.Now()

	var mu sync.Mutex
	seen := make(map[string]struct{}, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := NewReference(now)
			mu.Lock()
			seen[ref] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("expected %d unique references, got %d", n, len(seen))
	}
}

func TestNewReferenceSortsByTime(t *testing.T) {
	earlier := NewReference(time.Now().Add(-time.Hour))
	later := NewReference(time.Now())

	if earlier >= later {
		t.Fatalf("expected %q < %q", earlier, later)
	}
}

func TestNewRechargeCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := NewRechargeCode()
		if err != nil {
			t.Fatalf("new recharge code: %v", err)
		}
		if len(code) != 20 {
			t.Fatalf("expected 20 digits, got %d (%q)", len(code), code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected numeric code, got %q", code)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) != 100 {
		t.Fatalf("expected 100 unique codes, got %d", len(seen))
	}
}
