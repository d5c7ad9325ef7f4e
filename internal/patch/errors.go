package patch

import (
	"fmt"

	domainagg "github.com/yungbote/patchbridge-backend/internal/domain/aggregates"
)

const maxPatchInMessage = 2048

func clientError(op string, doc *Document, cause error) error {
	return domainagg.NewError(
		domainagg.CodePatchRejected,
		op,
		fmt.Sprintf("patch %s could not be applied: %v", doc.excerpt(), cause),
		cause,
	)
}

func decodeError(raw []byte, cause error) error {
	return domainagg.NewError(
		domainagg.CodePatchRejected,
		"patch.decode",
		fmt.Sprintf("invalid patch document %s: %v", truncate(raw), cause),
		cause,
	)
}

func serverError(op, message string, cause error) error {
	return domainagg.NewError(domainagg.CodeInternal, op, message, cause)
}

func truncate(raw []byte) string {
	if len(raw) <= maxPatchInMessage {
		return string(raw)
	}
	return string(raw[:maxPatchInMessage]) + "..."
}
