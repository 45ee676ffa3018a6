package openai

import "testing"

func TestExtractJSONArray_Bare(t *testing.T) {
	out, err := extractJSONArray(`["hardware_store","generic_store"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `["hardware_store","generic_store"]` {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestExtractJSONArray_WrappedInProse(t *testing.T) {
	raw := "Sure! Based on the part, here are the categories:\n```json\n" +
		`["hardware_store"]` + "\n```\nLet me know if you need more."
	out, err := extractJSONArray(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `["hardware_store"]` {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestExtractJSONArray_NestedObjects(t *testing.T) {
	raw := `The scores are [{"index":0,"likelihood":90,"reason":"stocks [most] parts"},{"index":1,"likelihood":40,"reason":"unlikely"}] as requested.`
	out, err := extractJSONArray(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"index":0,"likelihood":90,"reason":"stocks [most] parts"},{"index":1,"likelihood":40,"reason":"unlikely"}]`
	if string(out) != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
}

func TestExtractJSONArray_BracketInsideString(t *testing.T) {
	raw := `["a ] tricky \" value", "b"]`
	out, err := extractJSONArray(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != raw {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestExtractJSONArray_NoArray(t *testing.T) {
	if _, err := extractJSONArray("I could not determine any categories."); err == nil {
		t.Fatal("expected error for prose-only response")
	}
}

func TestExtractJSONArray_Unterminated(t *testing.T) {
	if _, err := extractJSONArray(`["hardware_store"`); err == nil {
		t.Fatal("expected error for unterminated array")
	}
}

func TestExtractJSONArray_InvalidJSON(t *testing.T) {
	if _, err := extractJSONArray(`[hardware_store]`); err == nil {
		t.Fatal("expected error for invalid JSON body")
	}
}
