package direction

import "strings"

// ExtractContext returns the part of transcript that concerns clientName:
// every line mentioning the client (case-insensitive substring) plus the
// line directly after each such line, which is usually the dealer's reply.
//
// Without a client name, or when no line mentions the client, the full
// transcript is returned. Substring matching over-selects for short names;
// that is kept as is so results match earlier classifications.
func ExtractContext(transcript, clientName string) string {
	if clientName == "" {
		return transcript
	}

	needle := strings.ToLower(clientName)
	lines := strings.Split(transcript, "\n")

	mentions := make([]bool, len(lines))
	for i, line := range lines {
		mentions[i] = strings.Contains(strings.ToLower(line), needle)
	}

	selected := make([]string, 0, len(lines))
	for i, line := range lines {
		if mentions[i] || (i > 0 && mentions[i-1]) {
			selected = append(selected, line)
		}
	}

	if len(selected) == 0 {
		return fullTranscriptFallback(transcript)
	}
	return strings.Join(selected, "\n")
}

// fullTranscriptFallback is taken when the client name is not found in any
// line, e.g. the extractor normalised "Bosera Fund" to "BOSERA FUND LTD".
func fullTranscriptFallback(transcript string) string {
	return transcript
}
