package patch

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpTest    = "test"
)

var knownOps = map[string]struct{}{
	OpAdd: {}, OpRemove: {}, OpReplace: {}, OpMove: {}, OpCopy: {}, OpTest: {},
}

// Document is a decoded RFC 6902 patch. The raw bytes are kept so that
// rejected patches can be reported back verbatim.
type Document struct {
	raw []byte
	ops jsonpatch.Patch
}

// Decode parses raw as a JSON Patch document. Anything that is not a JSON
// array of operations with known kinds is rejected as a client error.
func Decode(raw []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, decodeError(raw, errors.New("empty body"))
	}
	if trimmed[0] != '[' {
		return nil, decodeError(raw, errors.New("document must be a JSON array"))
	}
	ops, err := jsonpatch.DecodePatch(trimmed)
	if err != nil {
		return nil, decodeError(raw, err)
	}
	for i, op := range ops {
		kind := op.Kind()
		if _, ok := knownOps[kind]; !ok {
			return nil, decodeError(raw, fmt.Errorf("operation %d: unsupported op %q", i, kind))
		}
	}
	return &Document{raw: append([]byte(nil), trimmed...), ops: ops}, nil
}

// MustDecode is Decode for literals known to be valid.
func MustDecode(raw string) *Document {
	doc, err := Decode([]byte(raw))
	if err != nil {
		panic(err)
	}
	return doc
}

func (d *Document) Raw() []byte {
	if d == nil {
		return nil
	}
	return d.raw
}

func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ops)
}

// Kinds lists the op of every operation in document order.
func (d *Document) Kinds() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.ops))
	for _, op := range d.ops {
		out = append(out, op.Kind())
	}
	return out
}

// TestOnly reports whether every operation is a test. The empty document is
// test-only.
func (d *Document) TestOnly() bool {
	if d == nil {
		return true
	}
	for _, op := range d.ops {
		if op.Kind() != OpTest {
			return false
		}
	}
	return true
}

func (d *Document) String() string {
	if d == nil {
		return "[]"
	}
	return string(d.raw)
}

func (d *Document) excerpt() string {
	if d == nil {
		return "[]"
	}
	return strings.TrimSpace(truncate(d.raw))
}
