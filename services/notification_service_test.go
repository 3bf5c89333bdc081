package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestDecodeNotificationData(t *testing.T) {
	id := uuid.New()

	data := decodeNotificationData(id, []byte(`{"streak": 7, "kind": "milestone"}`))
	if data == nil {
		t.Fatal("expected decoded payload")
	}
	if data["kind"] != "milestone" {
		t.Errorf("expected kind milestone, got %v", data["kind"])
	}
}

func TestDecodeNotificationDataMalformed(t *testing.T) {
	id := uuid.New()

	if data := decodeNotificationData(id, []byte(`{"streak": `)); data != nil {
		t.Errorf("malformed payload should decode to nil, got %v", data)
	}
	if data := decodeNotificationData(id, nil); data != nil {
		t.Errorf("empty payload should decode to nil, got %v", data)
	}
}
