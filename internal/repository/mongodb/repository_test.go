package mongodb

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRecordDocumentShape(t *testing.T) {
	at := time.Date(2024, 1, 12, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	doc := newRecord("sales_tracker_articles", []byte(`[{"id":"a"}]`), at)

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("bson.Marshal: %v", err)
	}

	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("bson.Unmarshal: %v", err)
	}

	if decoded["_id"] != "sales_tracker_articles" {
		t.Errorf("_id = %v", decoded["_id"])
	}
	if decoded["value"] != `[{"id":"a"}]` {
		t.Errorf("value = %v, want the serialized collection as text", decoded["value"])
	}
	if !doc.UpdatedAt.Equal(at) || doc.UpdatedAt.Location() != time.UTC {
		t.Errorf("UpdatedAt = %v, want %v in UTC", doc.UpdatedAt, at)
	}
}
