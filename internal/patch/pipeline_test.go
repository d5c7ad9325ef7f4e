package patch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
)

type owner struct {
	ID    uint
	Name  string
	Items []*item
}

type ownerDTO struct {
	ID    uint
	Name  string
	Items int
}

type fakeStore struct {
	owners  map[uint]*owner
	nextID  uint
	saves   int
	changes []Change[ownerBean]
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		owners: map[uint]*owner{1: {ID: 1, Name: "John Doe", Items: ownedItems()}},
		nextID: 100,
	}
}

func (s *fakeStore) pipeline() *Pipeline[*owner, ownerBean, ownerDTO] {
	return &Pipeline[*owner, ownerBean, ownerDTO]{
		Resource: "owner",
		Applier:  newTestApplier(),
		Load: func(_ context.Context, id uint) (*owner, error) {
			o, ok := s.owners[id]
			if !ok {
				return nil, domainagg.NewError(domainagg.CodeNotFound, "owner.load", fmt.Sprintf("owner %d not found", id), nil)
			}
			cp := *o
			cp.Items = append([]*item(nil), o.Items...)
			return &cp, nil
		},
		ToBean: func(o *owner) ownerBean {
			b := ownerBean{Name: o.Name, Items: make([]itemBean, 0, len(o.Items))}
			for _, it := range o.Items {
				b.Items = append(b.Items, itemBean{ID: idp(it.ID), Title: it.Title})
			}
			return b
		},
		Write: func(o *owner, b ownerBean) {
			o.Name = b.Name
			o.Items = Reconcile(o.Items, b.Items, itemSpec(o.ID)).Kept
		},
		Save: func(_ context.Context, o *owner, ch Change[ownerBean]) (*owner, error) {
			s.saves++
			s.changes = append(s.changes, ch)
			for _, it := range o.Items {
				if it.ID == 0 {
					s.nextID++
					it.ID = s.nextID
				}
			}
			s.owners[o.ID] = o
			return o, nil
		},
		ToResponse: func(o *owner) ownerDTO {
			return ownerDTO{ID: o.ID, Name: o.Name, Items: len(o.Items)}
		},
	}
}

func TestUpdateByIDChangedPersistsOnce(t *testing.T) {
	s := newFakeStore()
	p := s.pipeline()
	var hooked int
	p.OnSaved = func(_ context.Context, o *owner, ch Change[ownerBean]) {
		hooked++
		if ch.Before.Name != "John Doe" || ch.After.Name != "Jane Doe" {
			t.Errorf("change beans: before=%q after=%q", ch.Before.Name, ch.After.Name)
		}
	}

	out, err := p.UpdateByID(context.Background(), 1, MustDecode(`[{"op":"test","path":"/name","value":"John Doe"},{"op":"replace","path":"/name","value":"Jane Doe"}]`))
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if !out.Changed || out.Result == nil {
		t.Fatalf("outcome: want changed with result, got %+v", out)
	}
	if out.Result.Name != "Jane Doe" {
		t.Fatalf("result name: want=Jane Doe got=%s", out.Result.Name)
	}
	if s.saves != 1 || hooked != 1 {
		t.Fatalf("saves=%d hooked=%d, want 1/1", s.saves, hooked)
	}
	if s.owners[1].Name != "Jane Doe" {
		t.Fatalf("stored name: %s", s.owners[1].Name)
	}
}

func TestUpdateByIDTestOnlyNeverSaves(t *testing.T) {
	s := newFakeStore()
	out, err := s.pipeline().UpdateByID(context.Background(), 1, MustDecode(`[{"op":"test","path":"/name","value":"John Doe"}]`))
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if out.Changed || out.Result != nil {
		t.Fatalf("outcome: want not changed, got %+v", out)
	}
	if s.saves != 0 {
		t.Fatalf("saves: want=0 got=%d", s.saves)
	}
}

func TestUpdateByIDNotFoundPassesThrough(t *testing.T) {
	s := newFakeStore()
	_, err := s.pipeline().UpdateByID(context.Background(), 10, MustDecode(`[{"op":"replace","path":"/name","value":"x"}]`))
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("want not_found, got code=%s (%v)", domainagg.CodeOf(err), err)
	}
}

func TestUpdateByIDClientErrorLeavesStoreUntouched(t *testing.T) {
	s := newFakeStore()
	_, err := s.pipeline().UpdateByID(context.Background(), 1, MustDecode(`[{"op":"test","path":"/name","value":"Wrong"},{"op":"replace","path":"/name","value":"X"}]`))
	if !domainagg.IsClientError(err) {
		t.Fatalf("want client error, got %v", err)
	}
	if s.saves != 0 || s.owners[1].Name != "John Doe" {
		t.Fatalf("store touched: saves=%d name=%s", s.saves, s.owners[1].Name)
	}
}

func TestUpdateByIDCollectionRemoveAndAdd(t *testing.T) {
	s := newFakeStore()
	p := s.pipeline()

	out, err := p.UpdateByID(context.Background(), 1, MustDecode(`[{"op":"remove","path":"/items/0"}]`))
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out.Result.Items != 2 {
		t.Fatalf("items after remove: want=2 got=%d", out.Result.Items)
	}
	if got := ids(s.owners[1].Items); got[0] != 2 || got[1] != 3 {
		t.Fatalf("survivors must keep their ids, got %v", got)
	}

	out, err = p.UpdateByID(context.Background(), 1, MustDecode(`[{"op":"add","path":"/items/-","value":{"title":"New Book"}}]`))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Result.Items != 3 {
		t.Fatalf("items after add: want=3 got=%d", out.Result.Items)
	}
	if s.owners[1].Items[2].ID != 101 {
		t.Fatalf("new item id: want=101 got=%d", s.owners[1].Items[2].ID)
	}
}

func TestUpdateInPlaceDoesNotPersist(t *testing.T) {
	s := newFakeStore()
	p := s.pipeline()
	o := &owner{ID: 5, Name: "Ann", Items: []*item{{ID: 9, Title: "t"}}}

	got, changed, err := p.Update(context.Background(), o, MustDecode(`[{"op":"replace","path":"/items/0/title","value":"T"}]`))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !changed || got.Items[0].Title != "T" || got.Items[0].ID != 9 {
		t.Fatalf("unexpected result changed=%v items=%+v", changed, got.Items)
	}
	if s.saves != 0 {
		t.Fatalf("saves: want=0 got=%d", s.saves)
	}
}

func TestUpdateByIDSaveErrorIsReturned(t *testing.T) {
	s := newFakeStore()
	p := s.pipeline()
	boom := errors.New("disk full")
	p.Save = func(context.Context, *owner, Change[ownerBean]) (*owner, error) { return nil, boom }
	called := false
	p.OnSaved = func(context.Context, *owner, Change[ownerBean]) { called = true }

	_, err := p.UpdateByID(context.Background(), 1, MustDecode(`[{"op":"replace","path":"/name","value":"x"}]`))
	if !errors.Is(err, boom) {
		t.Fatalf("want save error, got %v", err)
	}
	if called {
		t.Fatalf("OnSaved must not run when Save fails")
	}
}

func TestUpdateByIDUnconfiguredPipeline(t *testing.T) {
	p := &Pipeline[*owner, ownerBean, ownerDTO]{Resource: "owner"}
	_, err := p.UpdateByID(context.Background(), 1, MustDecode(`[]`))
	if !domainagg.IsServerError(err) {
		t.Fatalf("want server error, got %v", err)
	}
}
