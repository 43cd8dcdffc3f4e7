package bloom

import (
	"fmt"
	"sync"
	"testing"
)

func TestParams_CommonCases(t *testing.T) {
	// n=1, p=1% → m≈10, k≈7
	m, k := Params(1, 0.01)
	if m < 10 || k != 7 {
		t.Fatalf("n=1,p=0.01: got m=%d k=%d; want m>=10 k=7", m, k)
	}

	// a large package list: n=50k, p=1% → m≈479k bits
	m, k = Params(50_000, 0.01)
	if m < 470_000 || m > 490_000 {
		t.Fatalf("n=5e4,p=0.01: unexpected m=%d", m)
	}
	if k != 7 {
		t.Fatalf("n=5e4,p=0.01: k=%d; want 7", k)
	}

	if m, k = Params(10_000, 0.5); k != 1 || m == 0 {
		t.Fatalf("p=0.5: m=%d k=%d; want m>=1 k=1", m, k)
	}
}

func TestParams_Defaults(t *testing.T) {
	if m, k := Params(0, 0); m == 0 || k == 0 {
		t.Fatalf("n=0,p=0: expected m>=1 and k>=1; got m=%d k=%d", m, k)
	}
	m1, k1 := Params(100, 1.0)
	m2, k2 := Params(100, DefaultFPRate)
	if m1 != m2 || k1 != k2 {
		t.Fatalf("p>=1 must fall back to the default rate: got m=%d k=%d want m=%d k=%d", m1, k1, m2, k2)
	}
}

func TestFactory_Build(t *testing.T) {
	keys := []string{"0x1b2c::scam::SCAM", "0xdead::airdrop::CLAIM"}
	bf := NewFactory().Build(keys, 1e-9)
	for _, k := range keys {
		if !bf.MightContain([]byte(k)) {
			t.Fatalf("built filter lost %q", k)
		}
	}
	if bf.MightContain([]byte("0x2::sui::SUI")) {
		t.Fatalf("unexpected positive for an absent key in a two-entry filter")
	}
}

func TestFactory_BuildEmpty(t *testing.T) {
	bf := NewFactory().Build(nil, 0)
	if bf.MightContain([]byte("anything")) {
		t.Fatalf("empty filter reported a member")
	}
}

func TestFilter_ConcurrentReads(t *testing.T) {
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = fmt.Sprintf("0x%04d", i)
	}
	bf := NewFactory().Build(keys, 0.01)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(keys); i += 4 {
				if !bf.MightContain([]byte(keys[i])) {
					t.Errorf("lost key %s", keys[i])
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
