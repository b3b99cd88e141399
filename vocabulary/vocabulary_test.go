package vocabulary

import "testing"

func TestNewRegistry_Builtins(t *testing.T) {
	r := NewRegistry()

	term, ok := r.Lookup("Module")
	if !ok {
		t.Fatal("expected Module term to be registered")
	}
	if term.IRI != ClassModule {
		t.Errorf("expected IRI %s, got %s", ClassModule, term.IRI)
	}
}

func TestNewRegistry_WithTerm(t *testing.T) {
	r := NewRegistry(WithTerm("custom", Term{IRI: "https://example.org/custom", Label: "custom"}))

	term, ok := r.Lookup("custom")
	if !ok {
		t.Fatal("expected custom term to be registered")
	}
	if term.IRI != "https://example.org/custom" {
		t.Errorf("unexpected IRI: %s", term.IRI)
	}
}

func TestNewRegistry_UnknownLabel(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("DoesNotExist"); ok {
		t.Error("expected lookup of unknown label to fail")
	}
}

func TestRecognisedComponentTypes(t *testing.T) {
	if len(RecognisedComponentTypes) != 3 {
		t.Fatalf("expected 3 recognised component types, got %d", len(RecognisedComponentTypes))
	}
}
