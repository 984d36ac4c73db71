package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID decodes a hex id. Malformed ids cannot match a document, so
// callers treat ok == false as not found.
func parseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	return id, err == nil
}

// parseIDs decodes every well-formed id in hexes and drops the rest.
func parseIDs(hexes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, ok := parseID(h); ok {
			out = append(out, id)
		}
	}
	return out
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// optionalID decodes hex, returning the zero id for blank or malformed input
// so the field is omitted on write.
func optionalID(hex string) primitive.ObjectID {
	id, _ := parseID(hex)
	return id
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
