package patch

import (
	"encoding/json"
)

// toTree renders a bean as the JSON document the patch is applied to.
func toTree[B any](bean B) ([]byte, error) {
	return json.Marshal(bean)
}

// fromTree decodes a patched document into a fresh bean. Members the bean does
// not declare are ignored; a member of the wrong JSON type is an error.
func fromTree[B any](tree []byte) (B, error) {
	var out B
	if err := json.Unmarshal(tree, &out); err != nil {
		var zero B
		return zero, err
	}
	return out, nil
}
