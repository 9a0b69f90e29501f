package storage

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestExtensions_Get(t *testing.T) {
	var spec struct {
		Extensions Extensions `json:"extensions"`
	}
	if err := json.Unmarshal([]byte(`{"extensions":{"hint":"push the golem","par":12}}`), &spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var hint string
	found, err := spec.Extensions.Get("hint", &hint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "hint", hint, "push the golem")

	var par int
	if _, err := spec.Extensions.Get("par", &par); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "par", par, 12)

	var missing int
	found, err = spec.Extensions.Get("missing", &missing)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "missing found", found, false)
}

func TestExtensions_GetUnmarshalError(t *testing.T) {
	e := Extensions{"bad": []byte(`{"invalid json`)}

	var out map[string]string
	found, err := e.Get("bad", &out)

	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertErrorContains(t, err, "unmarshal extension")
}

func TestExtensions_NilSafe(t *testing.T) {
	var e Extensions
	var v string
	found, err := e.Get("x", &v)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, false)
}
