package port

import "context"

// JobStatus is the lifecycle state of an asynchronous recognition job.
type JobStatus string

const (
	JobStatusInProgress     JobStatus = "IN_PROGRESS"
	JobStatusSucceeded      JobStatus = "SUCCEEDED"
	JobStatusFailed         JobStatus = "FAILED"
	JobStatusPartialSuccess JobStatus = "PARTIAL_SUCCESS"
)

// Terminal reports whether the job has stopped making progress.
func (s JobStatus) Terminal() bool {
	return s != JobStatusInProgress
}

// BlockKind classifies a recognized block of document content.
type BlockKind string

const (
	BlockKindPage BlockKind = "PAGE"
	BlockKindLine BlockKind = "LINE"
	BlockKindWord BlockKind = "WORD"
)

// Block is one recognized unit of text. Some service responses populate
// Text, older response shapes populate DetectedText; readers take Text and
// fall back to DetectedText.
type Block struct {
	Kind         BlockKind
	Text         string
	DetectedText string
}

// DetectTextInput carries the document bytes for synchronous detection.
type DetectTextInput struct {
	Document []byte
}

// DetectTextOutput contains the blocks from a synchronous detection call.
type DetectTextOutput struct {
	Blocks []Block
}

// StartDetectionInput identifies the stored object to run a job against.
type StartDetectionInput struct {
	Bucket string
	Key    string
}

// GetDetectionInput addresses one result page of a recognition job.
type GetDetectionInput struct {
	JobID     string
	NextToken string
}

// DetectionPage is one page of job results. NextToken is empty on the last
// page. StatusMessage is the service's explanation for a failed job.
type DetectionPage struct {
	Status        JobStatus
	StatusMessage string
	Blocks        []Block
	NextToken     string
}

// TextDetector abstracts the cloud text-recognition service.
type TextDetector interface {
	DetectText(ctx context.Context, input DetectTextInput) (*DetectTextOutput, error)
	StartDetection(ctx context.Context, input StartDetectionInput) (string, error)
	GetDetection(ctx context.Context, input GetDetectionInput) (*DetectionPage, error)
}
