package patch

import (
	"context"
	"errors"
	"fmt"
)

// Outcome is what UpdateByID reports: whether anything was persisted and, if
// so, the response projection of the saved entity.
type Outcome[R any] struct {
	Changed bool
	Result  *R
}

// Change describes one successful patch application, for Save and OnSaved.
type Change[B any] struct {
	Doc    *Document
	Before B
	After  B
}

// Pipeline is the update orchestration for one resource type. E is the live
// entity, B its update bean, R its response shape.
type Pipeline[E any, B any, R any] struct {
	// Resource names the pipeline in error ops and logs, e.g. "author".
	Resource string
	Applier  *Applier

	Load       func(ctx context.Context, id uint) (E, error)
	ToBean     func(E) B
	Write      func(E, B)
	Save       func(ctx context.Context, entity E, change Change[B]) (E, error)
	ToResponse func(E) R

	// OnSaved runs after a successful Save. It must not fail the update.
	OnSaved func(ctx context.Context, entity E, change Change[B])
}

// Update projects entity to its bean, applies doc and writes the patched bean
// back onto entity. Nothing is persisted. changed=false means doc was
// test-only and entity was not touched.
func (p *Pipeline[E, B, R]) Update(ctx context.Context, entity E, doc *Document) (E, bool, error) {
	entity, _, changed, err := p.update(ctx, entity, doc)
	return entity, changed, err
}

// UpdateByID loads the entity, patches it and saves it when the patch changed
// something. Load errors (not found included) are returned as is.
func (p *Pipeline[E, B, R]) UpdateByID(ctx context.Context, id uint, doc *Document) (Outcome[R], error) {
	if err := p.validate(); err != nil {
		return Outcome[R]{}, err
	}
	entity, err := p.Load(ctx, id)
	if err != nil {
		return Outcome[R]{}, err
	}
	entity, change, changed, err := p.update(ctx, entity, doc)
	if err != nil {
		return Outcome[R]{}, err
	}
	if !changed {
		return Outcome[R]{Changed: false}, nil
	}
	saved, err := p.Save(ctx, entity, change)
	if err != nil {
		return Outcome[R]{}, err
	}
	if p.OnSaved != nil {
		p.OnSaved(ctx, saved, change)
	}
	res := p.ToResponse(saved)
	return Outcome[R]{Changed: true, Result: &res}, nil
}

func (p *Pipeline[E, B, R]) update(ctx context.Context, entity E, doc *Document) (E, Change[B], bool, error) {
	if p == nil || p.ToBean == nil || p.Write == nil {
		return entity, Change[B]{}, false, serverError(p.op("update"), "pipeline is missing ToBean or Write", nil)
	}
	before := p.ToBean(entity)
	after, changed, err := Apply(ctx, p.Applier, doc, before)
	if err != nil || !changed {
		return entity, Change[B]{}, false, err
	}
	p.Write(entity, after)
	return entity, Change[B]{Doc: doc, Before: before, After: after}, true, nil
}

func (p *Pipeline[E, B, R]) validate() error {
	var missing []error
	if p == nil {
		return serverError("patch.pipeline", "nil pipeline", nil)
	}
	if p.Load == nil {
		missing = append(missing, errors.New("Load"))
	}
	if p.ToBean == nil {
		missing = append(missing, errors.New("ToBean"))
	}
	if p.Write == nil {
		missing = append(missing, errors.New("Write"))
	}
	if p.Save == nil {
		missing = append(missing, errors.New("Save"))
	}
	if p.ToResponse == nil {
		missing = append(missing, errors.New("ToResponse"))
	}
	if len(missing) == 0 {
		return nil
	}
	return serverError(p.op("update_by_id"), "pipeline is not fully configured", fmt.Errorf("missing: %w", errors.Join(missing...)))
}

func (p *Pipeline[E, B, R]) op(name string) string {
	if p == nil || p.Resource == "" {
		return "patch." + name
	}
	return p.Resource + "." + name
}
