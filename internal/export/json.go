package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/kwbasket/kwbasket/internal/model"
)

// basketEntry is the JSON value stored under each "Basket {index}" key.
type basketEntry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// WriteJSON writes the nested representation: an object keyed by
// "Basket {index}", each value holding the basket name and its keywords.
// encoding/json sorts map keys, which would put "Basket 10" before
// "Basket 2", so the object is assembled by hand to keep insertion order.
func WriteJSON(w io.Writer, baskets model.Baskets) error {
	var buf bytes.Buffer
	buf.WriteString("{")

	for i, b := range baskets {
		keywords := b.Keywords
		if keywords == nil {
			keywords = []string{}
		}

		key, err := json.Marshal(fmt.Sprintf("Basket %d", b.Index))
		if err != nil {
			return fmt.Errorf("failed to marshal basket key: %w", err)
		}
		entry, err := json.MarshalIndent(basketEntry{Name: b.Name, Keywords: keywords}, "  ", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal basket %d: %w", b.Index, err)
		}

		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(entry)
	}

	if len(baskets) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// ParseJSON reconstructs a basket collection from the nested
// representation. Basket contents and names round-trip exactly; baskets
// are ordered by the index encoded in their keys.
func ParseJSON(r io.Reader) (model.Baskets, error) {
	var raw map[string]basketEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode baskets: %w", err)
	}

	baskets := make(model.Baskets, 0, len(raw))
	for key, entry := range raw {
		var idx int
		if _, err := fmt.Sscanf(key, "Basket %d", &idx); err != nil {
			return nil, fmt.Errorf("unexpected basket key %q", key)
		}
		baskets = append(baskets, model.Basket{
			Index:    idx,
			Name:     entry.Name,
			Keywords: entry.Keywords,
		})
	}

	sort.Slice(baskets, func(i, j int) bool { return baskets[i].Index < baskets[j].Index })
	return baskets, nil
}
