package patch

// ReconcileSpec tells Reconcile how to key entities and beans of an owned
// collection and how to create and update entities from beans.
type ReconcileSpec[E any, B any, K comparable] struct {
	// EntityKey returns the persistence identity of an owned entity; ok=false
	// for entities that were never saved.
	EntityKey func(E) (K, bool)
	// BeanKey returns the identity carried by a patched bean; ok=false when
	// the bean is a new item.
	BeanKey func(B) (K, bool)
	// New creates an unsaved entity owned by the aggregate root. Fields are
	// filled by Update afterwards.
	New func(B) E
	// Update copies the bean's scalar fields onto the entity.
	Update func(E, B)
}

// ReconcileResult is the create/update/delete diff Reconcile applied.
type ReconcileResult[E any] struct {
	// Kept is the new owned collection, in patched order.
	Kept    []E
	Created []E
	Updated []E
	// Removed are owned entities absent from the patched collection. The
	// persistence layer is responsible for deleting them.
	Removed []E
}

// Reconcile merges patched onto owned by identity.
//
// A bean whose key matches an owned entity updates that entity in place, so
// it keeps its identity. A bean with no key, or with a key no owned entity
// has, becomes a new entity; identities are never adopted from the patch.
// Owned entities whose key does not appear in patched are removed. Position
// plays no part: reordering the patched collection changes nothing but Kept
// order. When several beans carry the same key the entity is updated once per
// bean, the last one wins, and it appears in Kept once.
func Reconcile[E any, B any, K comparable](owned []E, patched []B, spec ReconcileSpec[E, B, K]) ReconcileResult[E] {
	byKey := make(map[K]int, len(owned))
	for i, e := range owned {
		if k, ok := spec.EntityKey(e); ok {
			if _, dup := byKey[k]; !dup {
				byKey[k] = i
			}
		}
	}

	var res ReconcileResult[E]
	matched := make(map[int]bool, len(owned))
	for _, b := range patched {
		if k, ok := spec.BeanKey(b); ok {
			if i, found := byKey[k]; found {
				e := owned[i]
				spec.Update(e, b)
				if !matched[i] {
					matched[i] = true
					res.Kept = append(res.Kept, e)
					res.Updated = append(res.Updated, e)
				}
				continue
			}
		}
		e := spec.New(b)
		spec.Update(e, b)
		res.Kept = append(res.Kept, e)
		res.Created = append(res.Created, e)
	}

	for i, e := range owned {
		if !matched[i] {
			res.Removed = append(res.Removed, e)
		}
	}
	return res
}
