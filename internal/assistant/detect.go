// internal/assistant/detect.go
package assistant

import "strings"

// DetectDataSources returns the ids of every source whose keywords appear in
// input, compared case-insensitively. Results follow keyword map order. An
// input that mentions no source yields an empty, non-nil slice.
func DetectDataSources(input string) []string {
	query := strings.ToLower(input)
	detected := make([]string, 0, 2)

	for _, entry := range dataSourceKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(query, keyword) {
				detected = append(detected, entry.source)
				break
			}
		}
	}

	return detected
}
