package envutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestString(t *testing.T) {
	t.Setenv("PB_TEST_STRING", "  value ")
	if got := String("PB_TEST_STRING", "def", nil); got != "value" {
		t.Fatalf("String: want=value got=%q", got)
	}
	if got := String("PB_TEST_STRING_MISSING", "def", nil); got != "def" {
		t.Fatalf("String default: want=def got=%q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("PB_TEST_INT", "42")
	t.Setenv("PB_TEST_INT_BAD", "forty-two")
	if got := Int("PB_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("Int: want=42 got=%d", got)
	}
	if got := Int("PB_TEST_INT_BAD", 7, nil); got != 7 {
		t.Fatalf("Int bad: want=7 got=%d", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("PB_TEST_BOOL_ON", "yes")
	t.Setenv("PB_TEST_BOOL_OFF", "0")
	t.Setenv("PB_TEST_BOOL_JUNK", "maybe")
	if !Bool("PB_TEST_BOOL_ON", false, nil) {
		t.Fatalf("Bool on: want=true")
	}
	if Bool("PB_TEST_BOOL_OFF", true, nil) {
		t.Fatalf("Bool off: want=false")
	}
	if !Bool("PB_TEST_BOOL_JUNK", true, nil) {
		t.Fatalf("Bool junk: want default true")
	}
}

func TestList(t *testing.T) {
	t.Setenv("PB_TEST_LIST", "a, b,,c ")
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, List("PB_TEST_LIST", nil, nil)); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x"}, List("PB_TEST_LIST_MISSING", []string{"x"}, nil)); diff != "" {
		t.Fatalf("List default mismatch (-want +got):\n%s", diff)
	}
}
