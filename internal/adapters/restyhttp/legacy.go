package restyhttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// legacyRequestBody serializes POST bodies to JSON text for legacy runtimes
// that cannot send structured payloads. Bodies that are already text are left alone.
func legacyRequestBody(_ *resty.Client, req *resty.Request) error {
	if req.Method != http.MethodPost || req.Body == nil {
		return nil
	}

	switch req.Body.(type) {
	case string, []byte:
		return nil
	}

	raw, err := json.Marshal(req.Body)
	if err != nil {
		return fmt.Errorf("failed to serialize legacy request body: %w", err)
	}
	req.SetBody(string(raw))
	return nil
}

// legacyResponseBody strictly decodes the raw response text.
func legacyResponseBody(body []byte) (any, error) {
	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode legacy response body: %w", err)
	}
	return result, nil
}
