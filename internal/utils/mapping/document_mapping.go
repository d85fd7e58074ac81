// Package mapping converts store documents to and from domain structs.
// Documents travel as loose field maps; the conversion is a json round trip so
// decimals, times, and nested structures keep their canonical encodings.
package mapping

import (
	"encoding/json"
	"fmt"

	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
)

// DecodeDocument decodes a store document into out, injecting the store id
// under the "id" key so domain structs carry their identity.
func DecodeDocument(doc portsrepo.Document, out any) error {
	fields := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		fields[k] = v
	}
	fields["id"] = doc.ID

	b, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decoding document %s: %w", doc.ID, err)
	}
	return nil
}

// EncodeFields converts a domain struct into a store field map, dropping the
// "id" key because identity lives outside the document body.
func EncodeFields(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("decoding fields: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}
