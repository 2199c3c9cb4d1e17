package panel

import (
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	data, err := EncodePayload("4a1f0b9e-aaaa-bbbb-cccc-000000000001")
	if err != nil {
		t.Fatalf("EncodePayload failed: %v", err)
	}
	id, err := DecodePayload(data)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if id != "4a1f0b9e-aaaa-bbbb-cccc-000000000001" {
		t.Errorf("Expected round-tripped id, got %s", id)
	}
}

func TestDecodePayloadPlainTextFallback(t *testing.T) {
	id, err := DecodePayload([]byte("  session-42\n"))
	if err != nil {
		t.Fatalf("Expected plain-text fallback to work, got %v", err)
	}
	if id != "session-42" {
		t.Errorf("Expected session-42, got %s", id)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte(""),
		[]byte("   "),
		[]byte(`{"other":"field"}`),
		[]byte("no spaces allowed here"),
	} {
		if id, err := DecodePayload(data); err == nil {
			t.Errorf("Expected %q to be rejected, got id %q", data, id)
		}
	}
}
