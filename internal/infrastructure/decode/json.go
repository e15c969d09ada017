package decode

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaptinlin/jsonrepair"
)

// decodeJSON re-indents the document for prompt readability, repairing
// malformed input before giving up.
func decodeJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return "", fmt.Errorf("parse json: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &v); err != nil {
			return "", fmt.Errorf("parse repaired json: %w", err)
		}
	}

	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return bounded(string(pretty)), nil
}
