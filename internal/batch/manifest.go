package batch

import (
	"encoding/json"
	"os"
)

// WriteManifest writes the results of a run as indented JSON.
func WriteManifest(path string, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
