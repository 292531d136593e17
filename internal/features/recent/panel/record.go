package panel

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Record is one stored question as the panel sees it. Every field is text;
// fields the backend omits or sends as null are empty.
type Record struct {
	ID        string
	Question  string
	Category  string
	CreatedAt string
}

// UnmarshalJSON accepts any scalar for each field, so numeric ids and
// timestamps decode to their textual form.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ID = scalarText(raw["id"])
	r.Question = scalarText(raw["question"])
	r.Category = scalarText(raw["category"])
	r.CreatedAt = scalarText(raw["created_at"])
	return nil
}

func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}

	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return string(raw)
	}
}

// ViewModel is one load's snapshot: a bounded page of records plus the
// server's count across the whole collection. Total is nil when unknown.
type ViewModel struct {
	Records []Record
	Total   *int64
}
