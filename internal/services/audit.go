package services

import (
	"context"
	"encoding/json"

	"github.com/wI2L/jsondiff"
	"gorm.io/datatypes"

	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
	"github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/patch"
	"github.com/yungbote/patchbridge-backend/internal/platform/ctxutil"
)

// newPatchEvent records the document as sent together with the effective
// diff it made to the bean.
func newPatchEvent(ctx context.Context, resource string, id uint, doc *patch.Document, before, after any) (*library.PatchEvent, error) {
	const op = "patch_event.build"
	diff, err := jsondiff.Compare(before, after)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	diffJSON, err := json.Marshal(diff)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if diff == nil {
		diffJSON = []byte("[]")
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		raw = []byte("[]")
	}
	event := &library.PatchEvent{
		Resource:   resource,
		ResourceID: id,
		Patch:      datatypes.JSON(raw),
		Diff:       datatypes.JSON(diffJSON),
	}
	if td := ctxutil.GetTraceData(ctx); td != nil {
		event.TraceID = td.TraceID
	}
	return event, nil
}
