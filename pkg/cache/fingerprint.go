package cache

import (
	"encoding/json"
	"fmt"
)

// namespace prefixes every key written by this library so bulk
// invalidation cannot touch unrelated entries in a shared store.
const namespace = "flowform:results:"

// Fingerprint derives the cache key for one operation invocation. The
// payload is serialized as canonical JSON (encoding/json sorts map keys),
// so two payloads that are structurally equal after a JSON round trip
// produce the same key regardless of original field order.
func Fingerprint(operationID string, payload any) string {
	return namespace + operationID + ":" + canonicalJSON(payload)
}

// operationPrefix is the common prefix of every key for one operation.
func operationPrefix(operationID string) string {
	return namespace + operationID + ":"
}

func canonicalJSON(payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		// Unserializable payloads still need a deterministic key.
		return fmt.Sprintf("!unserializable:%T", payload)
	}

	// Round-trip through map decoding so struct payloads and map payloads
	// with equal content serialize identically.
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return string(raw)
	}

	canonical, err := json.Marshal(normalized)
	if err != nil {
		return string(raw)
	}

	return string(canonical)
}
