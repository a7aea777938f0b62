package export

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURI unpacks a base64-encoded data URI into its MIME type and
// raw bytes. Only base64 data URIs are accepted because that is the sole
// form the capture pipeline produces.
func DecodeDataURI(uri string) (mimeType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return "", nil, fmt.Errorf("malformed data URI: missing payload separator")
	}
	meta, payload := rest[:comma], rest[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding: %q", meta)
	}
	mimeType = strings.TrimSuffix(meta, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URI payload: %w", err)
	}
	return mimeType, data, nil
}
