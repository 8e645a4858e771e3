package models

import "time"

// Event types exchanged over Kafka
const (
	EventTranscriptSubmitted = "TRANSCRIPT_SUBMITTED"
	EventActivitiesExtracted = "ACTIVITIES_EXTRACTED"
)

// TranscriptEvent is a Kafka message asking for a transcript to be analyzed
type TranscriptEvent struct {
	EventType string              `json:"event_type"`
	Source    string              `json:"source"`
	Timestamp string              `json:"timestamp"`
	Data      TranscriptEventData `json:"data"`
}

// TranscriptEventData holds the transcript payload
type TranscriptEventData struct {
	TranscriptID string `json:"transcript_id"`
	Transcript   string `json:"transcript"`
}

// ActivitiesEvent is published once a transcript has been analyzed
type ActivitiesEvent struct {
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Data      *Analysis `json:"data"`
}
