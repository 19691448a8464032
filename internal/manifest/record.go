package manifest

// Record is one manifest entry, serialized as a single JSON line. Field
// order is part of the output contract consumed downstream.
type Record struct {
	FilePath   string  `json:"file_path"`
	SpeakerID  string  `json:"speaker_id"`
	DurationMS float64 `json:"duration_ms"`
	Split      string  `json:"split"`
	Rating     float64 `json:"rating"`
}
