package services

import (
	"context"
	"sync"
	"testing"

	"github.com/yungbote/patchbridge-backend/internal/data/aggregates"
	"github.com/yungbote/patchbridge-backend/internal/data/repos"
	repotest "github.com/yungbote/patchbridge-backend/internal/data/repos/testutil"
	"github.com/yungbote/patchbridge-backend/internal/patch"
)

type spyNotifier struct {
	mu     sync.Mutex
	events []spyChange
}

type spyChange struct {
	Resource string
	ID       uint
	Patch    string
}

func (n *spyNotifier) PatchApplied(_ context.Context, resource string, id uint, rawPatch []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, spyChange{Resource: resource, ID: id, Patch: string(rawPatch)})
}

type harness struct {
	repos    repos.Set
	notifier *spyNotifier
	authors  AuthorService
	books    BookService
}

func newHarness(t *testing.T) harness {
	t.Helper()
	db := repotest.SeededDB(t)
	log := repotest.Logger(t)
	set := repos.NewSet(db, log)
	base := aggregates.BaseDeps{DB: db, Log: log}
	applier := patch.NewApplier(log, nil)
	notifier := &spyNotifier{}
	return harness{
		repos:    set,
		notifier: notifier,
		authors: NewAuthorService(log, set.Authors,
			aggregates.NewAuthorAggregate(aggregates.AuthorAggregateDeps{Base: base, Authors: set.Authors, PatchEvents: set.PatchEvents}),
			applier, notifier),
		books: NewBookService(log, set.Books,
			aggregates.NewBookAggregate(aggregates.BookAggregateDeps{Base: base, Books: set.Books, Authors: set.Authors, PatchEvents: set.PatchEvents}),
			applier, notifier),
	}
}
