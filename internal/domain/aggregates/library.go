package aggregates

import (
	"context"

	"github.com/yungbote/patchbridge-backend/internal/domain/library"
)

var AuthorAggregateContract = Contract{
	Name:             "Library.AuthorAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic author row update, owned book upserts, orphaned book deletion and patch event recording.",
}

var BookAggregateContract = Contract{
	Name:             "Library.BookAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic book row update (author written by reference only) and patch event recording.",
}

// AuthorAggregate persists a patched author together with its owned books.
//
// Write failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodePreconditionFailed, CodeRetryable, CodeInternal.
type AuthorAggregate interface {
	Aggregate

	// SaveAuthor updates the author row, inserts or updates every book in
	// Author.Books with the author back-reference set, deletes the author's
	// books missing from Author.Books and records Event, all in one transaction.
	SaveAuthor(ctx context.Context, in SaveAuthorInput) (SaveAuthorResult, error)
}

type SaveAuthorInput struct {
	Author *library.Author
	// Event is optional; when set it is written in the same transaction.
	Event *library.PatchEvent
}

type SaveAuthorResult struct {
	Author       *library.Author
	BooksSaved   int
	BooksRemoved int64
}

// BookAggregate persists a patched book. The author is referenced by id only;
// the referenced author must exist.
type BookAggregate interface {
	Aggregate

	SaveBook(ctx context.Context, in SaveBookInput) (SaveBookResult, error)
}

type SaveBookInput struct {
	Book  *library.Book
	Event *library.PatchEvent
}

type SaveBookResult struct {
	// Book is reloaded after the write with its author resolved.
	Book *library.Book
}
