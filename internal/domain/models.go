package domain

// BinaryData is one binary attachment on a record, as the workflow host
// serializes it: base64 payload plus content metadata.
type BinaryData struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
	FileName string `json:"fileName,omitempty"`
}

// Record is a single batch input item. JSON carries the record's structured
// fields; Binary carries named attachments.
type Record struct {
	JSON   map[string]any        `json:"json"`
	Binary map[string]BinaryData `json:"binary,omitempty"`
}

// InputFile is a resolved, decoded input payload. It is built once per
// record and never mutated afterwards.
type InputFile struct {
	Bytes    []byte
	MimeType string
	FileName string
}

// OutputRecord is a single item appended to a batch result. Exactly one is
// produced per input record; warning records may trail it.
type OutputRecord struct {
	JSON map[string]any `json:"json"`
}

// TokenUsage reports model token consumption for one invocation.
type TokenUsage struct {
	InputTokens  int32 `json:"inputTokens"`
	OutputTokens int32 `json:"outputTokens"`
	TotalTokens  int32 `json:"totalTokens"`
}

// ErrorRecord builds the output record for a tolerated per-record failure.
func ErrorRecord(err error) OutputRecord {
	return OutputRecord{JSON: map[string]any{"error": err.Error()}}
}

// WarningRecord builds the output record for a non-fatal cleanup failure.
func WarningRecord(msg string) OutputRecord {
	return OutputRecord{JSON: map[string]any{"warning": msg}}
}
