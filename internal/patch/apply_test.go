package patch

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/patchbridge-backend/internal/observability"
)

func newTestApplier() *Applier {
	return NewApplier(nil, observability.New(nil))
}

func TestApplyScalarUpdate(t *testing.T) {
	in := sampleOwner()
	doc := MustDecode(`[{"op":"test","path":"/name","value":"John Doe"},{"op":"replace","path":"/name","value":"Jane Doe"}]`)

	out, changed, err := Apply(context.Background(), newTestApplier(), doc, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatalf("changed: want=true")
	}
	if out.Name != "Jane Doe" {
		t.Fatalf("name: want=Jane Doe got=%s", out.Name)
	}
	if in.Name != "John Doe" {
		t.Fatalf("input bean mutated: %s", in.Name)
	}
	if diff := cmp.Diff(in.Items, out.Items); diff != "" {
		t.Fatalf("items should be untouched (-in +out):\n%s", diff)
	}
}

func TestApplyTestOnlyIsNoOpRegardlessOfAssertions(t *testing.T) {
	docs := []string{
		`[]`,
		`[{"op":"test","path":"/name","value":"John Doe"}]`,
		`[{"op":"test","path":"/name","value":"Somebody Else"}]`,
		`[{"op":"test","path":"/does/not/exist","value":1}]`,
		`[{"op":"test","path":"/items/99/title","value":"x"},{"op":"test","path":"/name","value":"John Doe"}]`,
	}
	for _, raw := range docs {
		t.Run(raw, func(t *testing.T) {
			in := sampleOwner()
			out, changed, err := Apply(context.Background(), newTestApplier(), MustDecode(raw), in)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if changed {
				t.Fatalf("changed: want=false")
			}
			if diff := cmp.Diff(sampleOwner(), out); diff != "" {
				t.Fatalf("bean changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyClientErrors(t *testing.T) {
	cases := map[string]string{
		"failed test":        `[{"op":"test","path":"/name","value":"Wrong"},{"op":"replace","path":"/name","value":"X"}]`,
		"missing member":     `[{"op":"replace","path":"/id","value":10}]`,
		"index out of range": `[{"op":"remove","path":"/items/7"}]`,
		"bad move source":    `[{"op":"move","from":"/nope","path":"/name"}]`,
		"add past the end":   `[{"op":"add","path":"/items/9","value":{"title":"x"}}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleOwner()
			out, changed, err := Apply(context.Background(), newTestApplier(), MustDecode(raw), in)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domainagg.IsClientError(err) {
				t.Fatalf("want client error, got code=%s (%v)", domainagg.CodeOf(err), err)
			}
			if changed {
				t.Fatalf("changed: want=false on error")
			}
			if diff := cmp.Diff(sampleOwner(), out); diff != "" {
				t.Fatalf("bean changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	in := sampleOwner()
	doc := MustDecode(`[
		{"op":"replace","path":"/name","value":"Jane Doe"},
		{"op":"remove","path":"/items/0"},
		{"op":"test","path":"/items/0/title","value":"Java 101"}
	]`)
	out, _, err := Apply(context.Background(), newTestApplier(), doc, in)
	if err == nil {
		t.Fatalf("expected error from failing third operation")
	}
	if diff := cmp.Diff(sampleOwner(), out); diff != "" {
		t.Fatalf("partial effects visible (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sampleOwner(), in); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestApplyOperationsSeeEarlierEffects(t *testing.T) {
	doc := MustDecode(`[
		{"op":"replace","path":"/name","value":"Jane Doe"},
		{"op":"test","path":"/name","value":"Jane Doe"},
		{"op":"copy","from":"/name","path":"/items/0/title"},
		{"op":"move","from":"/items/2","path":"/items/0"}
	]`)
	out, changed, err := Apply(context.Background(), newTestApplier(), doc, sampleOwner())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatalf("changed: want=true")
	}
	want := ownerBean{
		Name: "Jane Doe",
		Items: []itemBean{
			{ID: idp(3), Title: "Java 103"},
			{ID: idp(1), Title: "Jane Doe"},
			{ID: idp(2), Title: "Java 102"},
		},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyCollectionEdits(t *testing.T) {
	doc := MustDecode(`[
		{"op":"remove","path":"/items/0"},
		{"op":"add","path":"/items/-","value":{"title":"New Book"}}
	]`)
	out, _, err := Apply(context.Background(), newTestApplier(), doc, sampleOwner())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []itemBean{
		{ID: idp(2), Title: "Java 102"},
		{ID: idp(3), Title: "Java 103"},
		{ID: nil, Title: "New Book"},
	}
	if diff := cmp.Diff(want, out.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyUnknownMembersAreIgnored(t *testing.T) {
	doc := MustDecode(`[{"op":"add","path":"/nickname","value":"JD"}]`)
	out, changed, err := Apply(context.Background(), newTestApplier(), doc, sampleOwner())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatalf("changed: want=true")
	}
	if diff := cmp.Diff(sampleOwner(), out); diff != "" {
		t.Fatalf("bean mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyWrongValueTypeIsServerError(t *testing.T) {
	doc := MustDecode(`[{"op":"replace","path":"/name","value":5}]`)
	out, changed, err := Apply(context.Background(), newTestApplier(), doc, sampleOwner())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domainagg.IsServerError(err) {
		t.Fatalf("want server error, got code=%s (%v)", domainagg.CodeOf(err), err)
	}
	if changed {
		t.Fatalf("changed: want=false")
	}
	if out.Name != "John Doe" {
		t.Fatalf("bean changed: %s", out.Name)
	}
}

type unserializableBean struct {
	Name string   `json:"name"`
	Feed chan int `json:"feed"`
}

func TestApplyUnserializableBeanIsServerError(t *testing.T) {
	doc := MustDecode(`[{"op":"replace","path":"/name","value":"x"}]`)
	_, _, err := Apply(context.Background(), newTestApplier(), doc, unserializableBean{Feed: make(chan int)})
	if !domainagg.IsServerError(err) {
		t.Fatalf("want server error, got code=%s (%v)", domainagg.CodeOf(err), err)
	}
}

func TestTreeRoundTrip(t *testing.T) {
	beans := []ownerBean{
		sampleOwner(),
		{Name: "", Items: []itemBean{{Title: "unsaved"}}},
		{Name: "Unicode ✓ \"quoted\"", Items: []itemBean{{ID: idp(42), Title: "<html>&"}}},
	}
	for _, b := range beans {
		tree, err := toTree(b)
		if err != nil {
			t.Fatalf("toTree: %v", err)
		}
		got, err := fromTree[ownerBean](tree)
		if err != nil {
			t.Fatalf("fromTree: %v", err)
		}
		if diff := cmp.Diff(b, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}
