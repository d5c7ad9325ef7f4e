package audit

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/patchbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
)

func TestPatchEventRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewPatchEventRepo(db, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.PatchEvent{
		{
			Resource:   types.ResourceAuthor,
			ResourceID: 1,
			Patch:      datatypes.JSON(`[{"op":"replace","path":"/name","value":"X"}]`),
			Diff:       datatypes.JSON(`[{"op":"replace","path":"/name","value":"X"}]`),
			TraceID:    "trace-1",
		},
		{
			Resource:   types.ResourceBook,
			ResourceID: 1,
			Patch:      datatypes.JSON(`[]`),
			Diff:       datatypes.JSON(`[]`),
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 || created[0].ID.String() == "" || created[0].CreatedAt.IsZero() {
		t.Fatalf("Create: unexpected %+v", created)
	}

	rows, err := repo.ListByResource(dbc, types.ResourceAuthor, 1, 0)
	if err != nil {
		t.Fatalf("ListByResource: %v", err)
	}
	if len(rows) != 1 || rows[0].TraceID != "trace-1" {
		t.Fatalf("ListByResource: want one author event got=%+v", rows)
	}

	none, err := repo.ListByResource(dbc, types.ResourceAuthor, 2, 10)
	if err != nil || len(none) != 0 {
		t.Fatalf("ListByResource(2): want empty got=%v %v", none, err)
	}

	if out, err := repo.Create(dbc, nil); err != nil || len(out) != 0 {
		t.Fatalf("Create(nil): want empty got=%v %v", out, err)
	}
}
