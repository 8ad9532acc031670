package upstream

import (
	"bytes"
	"encoding/json"

	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
)

// rawMessage defers decoding until the collection shape is known.
type rawMessage = json.RawMessage

// normalizeList accepts both shapes the commerce API serves for collections:
// a Spring-style page envelope {"content": [...]} and a bare JSON array.
func normalizeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '{' {
		var envelope struct {
			Content []T `json:"content"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode paged collection")
		}
		if envelope.Content == nil {
			return []T{}, nil
		}
		return envelope.Content, nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode collection")
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}
