package library

import (
	"context"
	"testing"

	"github.com/yungbote/patchbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
)

func TestBookRepoGetByID(t *testing.T) {
	db := testutil.SeededDB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewBookRepo(db, testutil.Logger(t))

	b, err := repo.GetByID(dbc, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b == nil || b.Title != "Java 101" {
		t.Fatalf("GetByID: want=Java 101 got=%+v", b)
	}
	if b.Author == nil || b.Author.Name != "John Doe" {
		t.Fatalf("author: want=John Doe got=%+v", b.Author)
	}

	missing, err := repo.GetByID(dbc, 500)
	if err != nil || missing != nil {
		t.Fatalf("GetByID(missing): want=nil,nil got=%v,%v", missing, err)
	}
}

func TestBookRepoSaveMovesAuthor(t *testing.T) {
	db := testutil.SeededDB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewBookRepo(db, testutil.Logger(t))

	b, err := repo.GetByID(dbc, 2)
	if err != nil || b == nil {
		t.Fatalf("GetByID: %v %v", b, err)
	}
	b.AuthorID = testutil.PtrUint(2)
	b.Title = "Java 102 (moved)"
	if err := repo.Save(dbc, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(dbc, 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.OwnedBy(2) || got.Author == nil || got.Author.Name != "Ada Byron" {
		t.Fatalf("author: want=Ada Byron got=%+v", got.Author)
	}
	if got.Title != "Java 102 (moved)" {
		t.Fatalf("title: want=Java 102 (moved) got=%s", got.Title)
	}

	johns, err := repo.ListByAuthor(dbc, 1)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(johns) != 2 {
		t.Fatalf("ListByAuthor(1): want=2 got=%d", len(johns))
	}
}

func TestBookRepoSaveClearsAuthor(t *testing.T) {
	db := testutil.SeededDB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewBookRepo(db, testutil.Logger(t))

	b := &types.Book{Title: "Orphan"}
	if err := repo.Save(dbc, b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByID(dbc, b.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v %v", got, err)
	}
	if got.AuthorID != nil || got.Author != nil {
		t.Fatalf("author: want=nil got=%v %+v", got.AuthorID, got.Author)
	}
}
