package models

import (
	"encoding/json"
	"testing"
)

func TestNumberIsLenient(t *testing.T) {
	var rec struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
		F Number `json:"f"`
	}
	raw := `{"a": 12.5, "b": "+1,234", "c": null, "d": "n/a", "e": true, "f": {"x": 1}}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.A != 12.5 || rec.B != 1234 {
		t.Fatalf("unexpected parsed values %v %v", rec.A, rec.B)
	}
	if rec.C != 0 || rec.D != 0 || rec.E != 0 || rec.F != 0 {
		t.Fatalf("malformed values should be zero: %v %v %v %v", rec.C, rec.D, rec.E, rec.F)
	}
}

func TestNumberRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{`"NaN"`, `"Inf"`, `"-Infinity"`, `"+inf"`, `1e400`} {
		n := Number(7)
		if err := n.UnmarshalJSON([]byte(raw)); err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if n != 0 {
			t.Fatalf("%s: expected 0, got %v", raw, n)
		}
	}
}

func TestTextAcceptsNumbers(t *testing.T) {
	var rec struct {
		Sig  Text `json:"sig"`
		Name Text `json:"name"`
		Bad  Text `json:"bad"`
	}
	if err := json.Unmarshal([]byte(`{"sig": 2, "name": " Samsung ", "bad": [1]}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Sig != "2" || rec.Name != "Samsung" || rec.Bad != "" {
		t.Fatalf("unexpected text values %q %q %q", rec.Sig, rec.Name, rec.Bad)
	}
}

func TestViewConstructors(t *testing.T) {
	v := Ready([]int{1, 2})
	if !v.IsReady() || len(v.Value()) != 2 {
		t.Fatal("ready view lost data")
	}
	e := Empty[[]int]()
	if e.Status() != StateEmpty || e.Message != EmptyMessage || e.IsReady() {
		t.Fatal("unexpected empty view")
	}
	f := Failed[[]int]("")
	if f.Status() != StateError || f.Message != FailedMessage {
		t.Fatal("unexpected failed view")
	}
	if f.Value() != nil {
		t.Fatal("failed view should have no data")
	}
}
