package panel

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/shared/utils"
)

// PayloadType identifies the panel's drag payload to the drop
// substrate. Generic drop targets fall back to the plain-text form.
const PayloadType = "application/x-terminal-session"

// Payload is the drag payload: just the dragged session's id.
type Payload struct {
	SessionID string `json:"session_id"`
}

// EncodePayload serializes a drag payload.
func EncodePayload(sessionID string) ([]byte, error) {
	return sonic.Marshal(Payload{SessionID: sessionID})
}

// DecodePayload extracts the dragged session id from payload bytes,
// accepting the JSON form first and bare text as the interoperability
// fallback. A payload with no usable id fails, which aborts that one
// drop and nothing else.
func DecodePayload(data []byte) (string, error) {
	var p Payload
	if err := sonic.Unmarshal(data, &p); err == nil && p.SessionID != "" {
		return p.SessionID, nil
	}
	text := strings.TrimSpace(string(data))
	if err := utils.ValidateID(text, "session_id", true); err != nil {
		return "", fmt.Errorf("drag payload: %w", err)
	}
	return text, nil
}
