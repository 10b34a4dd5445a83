package shapes

import (
	"fmt"
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/transit-tracker/coord"
)

// tableFetcher serves canned payloads by key and counts fetches per key.
type tableFetcher struct {
	payloads map[string][]byte
	calls    map[string]int
}

func (f *tableFetcher) FetchTable(key string) ([]byte, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[key]++
	p, ok := f.payloads[key]
	if !ok {
		return nil, fmt.Errorf("no payload for key %s", key)
	}
	return p, nil
}

func payloadV1() []byte {
	return []byte(`{"shapes":{
		"ids":["5_a"],
		"compressedLats":[[100000,-50000]],
		"compressedLons":[[0,10000]]
	}}`)
}

func payloadV2() []byte {
	return []byte(`{"shapes":{
		"ids":["5_a","12_b"],
		"compressedLats":[[100000],[200000]],
		"compressedLons":[[0],[0]]
	}}`)
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEnsureFetchesOncePerKey(t *testing.T) {
	f := &tableFetcher{payloads: map[string][]byte{"v1": payloadV1()}}
	c := NewCache(f, coord.ZagrebFrame)

	for i := 0; i < 3; i++ {
		table, err := c.Ensure("v1")
		if err != nil {
			t.Fatalf("Ensure #%d: %v", i+1, err)
		}
		if len(table) != 1 {
			t.Fatalf("Ensure #%d: table has %d shapes, want 1", i+1, len(table))
		}
	}
	if f.calls["v1"] != 1 {
		t.Errorf("fetched key v1 %d times, want 1", f.calls["v1"])
	}
	if c.ActiveKey() != "v1" {
		t.Errorf("ActiveKey = %q, want v1", c.ActiveKey())
	}
}

func TestEnsureDecodesAgainstReferenceFrame(t *testing.T) {
	f := &tableFetcher{payloads: map[string][]byte{"v1": payloadV1()}}
	c := NewCache(f, coord.ZagrebFrame)

	table, err := c.Ensure("v1")
	if err != nil {
		t.Fatal(err)
	}
	s, ok := table["5_a"]
	if !ok {
		t.Fatal("shape 5_a missing")
	}
	wantLats := []float64{45.915, 45.865}
	wantLons := []float64{15.9819, 15.9919}
	for i := range wantLats {
		if !almostEqual(s.Lats[i], wantLats[i]) || !almostEqual(s.Lons[i], wantLons[i]) {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, s.Lats[i], s.Lons[i], wantLats[i], wantLons[i])
		}
	}
}

func TestEnsureRefetchesOnKeyChange(t *testing.T) {
	f := &tableFetcher{payloads: map[string][]byte{
		"v1": payloadV1(),
		"v2": payloadV2(),
	}}
	c := NewCache(f, coord.ZagrebFrame)

	if _, err := c.Ensure("v1"); err != nil {
		t.Fatal(err)
	}
	table, err := c.Ensure("v2")
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 2 {
		t.Errorf("v2 table has %d shapes, want 2", len(table))
	}
	if _, ok := table["12_b"]; !ok {
		t.Error("v2 table missing shape 12_b")
	}
	if f.calls["v1"] != 1 || f.calls["v2"] != 1 {
		t.Errorf("fetch counts = %v, want one per key", f.calls)
	}
	if c.ActiveKey() != "v2" {
		t.Errorf("ActiveKey = %q, want v2", c.ActiveKey())
	}
}

func TestEnsureKeepsTableOnFetchError(t *testing.T) {
	f := &tableFetcher{payloads: map[string][]byte{"v1": payloadV1()}}
	c := NewCache(f, coord.ZagrebFrame)

	if _, err := c.Ensure("v1"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Ensure("v2"); err == nil {
		t.Fatal("expected an error for the unknown key")
	}
	if c.ActiveKey() != "v1" {
		t.Errorf("ActiveKey = %q after failed refresh, want v1", c.ActiveKey())
	}
	table, err := c.Ensure("v1")
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 1 {
		t.Errorf("v1 table has %d shapes after failed refresh, want 1", len(table))
	}
	if f.calls["v1"] != 1 {
		t.Errorf("fetched key v1 %d times, want 1 (cache survived the failure)", f.calls["v1"])
	}
}

func TestEnsureRejectsMismatchedPayload(t *testing.T) {
	bad := []byte(`{"shapes":{
		"ids":["5_a"],
		"compressedLats":[[100000]],
		"compressedLons":[]
	}}`)
	f := &tableFetcher{payloads: map[string][]byte{"v1": bad}}
	c := NewCache(f, coord.ZagrebFrame)

	if _, err := c.Ensure("v1"); err == nil {
		t.Fatal("expected an error for mismatched parallel arrays")
	}
	if c.ActiveKey() != "" {
		t.Errorf("ActiveKey = %q after decode failure, want empty", c.ActiveKey())
	}
}
