package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"docbridge/internal/domain"
	"docbridge/internal/port"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultTimeout      = 5 * time.Minute
	cleanupTimeout      = 30 * time.Second
)

// ExtractOptions controls one extraction. Bucket and KeyPrefix apply to the
// PDF path only; zero durations fall back to the defaults.
type ExtractOptions struct {
	Bucket       string
	KeyPrefix    string
	PollInterval time.Duration
	Timeout      time.Duration
}

// Engine extracts plain text from image and PDF inputs. Images go through a
// single synchronous detection call; PDFs are staged in object storage and
// run through an asynchronous detection job.
type Engine interface {
	Extract(ctx context.Context, file domain.InputFile, opts ExtractOptions) (text string, warnings []string, err error)
}

type engine struct {
	storage  port.ObjectStorage
	detector port.TextDetector
}

// NewEngine creates the extraction engine.
func NewEngine(storage port.ObjectStorage, detector port.TextDetector) Engine {
	return &engine{storage: storage, detector: detector}
}

func (e *engine) Extract(ctx context.Context, file domain.InputFile, opts ExtractOptions) (string, []string, error) {
	switch {
	case domain.IsImage(file.MimeType):
		return e.extractImage(ctx, file)
	case domain.IsPDF(file.MimeType):
		return e.extractPDF(ctx, file, opts)
	default:
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInput, file.MimeType)
	}
}

func (e *engine) extractImage(ctx context.Context, file domain.InputFile) (string, []string, error) {
	result, err := e.detector.DetectText(ctx, port.DetectTextInput{Document: file.Bytes})
	if err != nil {
		return "", nil, fmt.Errorf("detecting document text: %w", err)
	}
	return joinLines(result.Blocks), nil, nil
}

// extractPDF uploads the document under a collision-resistant key, runs an
// asynchronous detection job against it, and collects every result page.
// The uploaded object is deleted exactly once on every path past the
// upload; a failed delete becomes a warning, never an error.
func (e *engine) extractPDF(ctx context.Context, file domain.InputFile, opts ExtractOptions) (text string, warnings []string, err error) {
	if opts.Bucket == "" {
		return "", nil, domain.ErrBucketMissing
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	key := fmt.Sprintf("%s%d-%s.pdf", opts.KeyPrefix, time.Now().UnixMilli(), uuid.NewString())

	if _, err := e.storage.Upload(ctx, port.UploadInput{
		Bucket:      opts.Bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Bytes),
		ContentType: domain.ContentTypePDF,
		Size:        int64(len(file.Bytes)),
	}); err != nil {
		return "", nil, fmt.Errorf("%w: staging pdf for text detection: %v", domain.ErrUploadFailed, err)
	}

	defer func() {
		// Caller context may already be canceled; deletion still gets a chance.
		dctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		if derr := e.storage.Delete(dctx, opts.Bucket, key); derr != nil {
			log.Printf("ocr.Engine: deleting temporary object %s/%s: %v", opts.Bucket, key, derr)
			warnings = append(warnings, fmt.Sprintf("failed to delete temporary object %s/%s: %v", opts.Bucket, key, derr))
		}
	}()

	jobID, err := e.detector.StartDetection(ctx, port.StartDetectionInput{Bucket: opts.Bucket, Key: key})
	if err != nil {
		return "", warnings, &JobStartError{Err: err, Key: key}
	}
	if jobID == "" {
		return "", warnings, &JobStartError{Key: key}
	}
	log.Printf("ocr.Engine: started text detection job %s for %s/%s", jobID, opts.Bucket, key)

	page, err := e.awaitJob(ctx, jobID, interval, timeout)
	if err != nil {
		return "", warnings, err
	}
	if page.Status != port.JobStatusSucceeded {
		return "", warnings, &JobIncompleteError{
			JobID:         jobID,
			Status:        page.Status,
			StatusMessage: page.StatusMessage,
		}
	}

	// The terminal status response already carries the first result page.
	blocks := page.Blocks
	token := page.NextToken
	for token != "" {
		next, err := e.detector.GetDetection(ctx, port.GetDetectionInput{JobID: jobID, NextToken: token})
		if err != nil {
			return "", warnings, fmt.Errorf("fetching text detection results: %w", err)
		}
		blocks = append(blocks, next.Blocks...)
		token = next.NextToken
	}

	return joinLines(blocks), warnings, nil
}

// awaitJob polls at a fixed cadence until the job reaches a terminal status
// or the wall-clock budget runs out. The budget is checked between polls
// only, so one in-flight poll may complete past the deadline.
func (e *engine) awaitJob(ctx context.Context, jobID string, interval, timeout time.Duration) (*port.DetectionPage, error) {
	started := time.Now()
	deadline := started.Add(timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		page, err := e.detector.GetDetection(ctx, port.GetDetectionInput{JobID: jobID})
		if err != nil {
			return nil, fmt.Errorf("polling text detection job %s: %w", jobID, err)
		}
		if page.Status.Terminal() {
			return page, nil
		}
		if !time.Now().Before(deadline) {
			return nil, &JobIncompleteError{
				JobID:    jobID,
				Status:   page.Status,
				TimedOut: true,
				Waited:   time.Since(started).Round(time.Second),
			}
		}
	}
}

// joinLines concatenates line blocks in service order. Either text field may
// be populated depending on the response shape.
func joinLines(blocks []port.Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind != port.BlockKindLine {
			continue
		}
		text := b.Text
		if text == "" {
			text = b.DetectedText
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}
