package domain

import "errors"

var (
	ErrRegionMissing      = errors.New("aws region is not configured")
	ErrCredentialsMissing = errors.New("aws credentials are not configured")
	ErrBucketMissing      = errors.New("working bucket is not configured")
	ErrModelMissing       = errors.New("model id is not configured")
	ErrInstructionMissing = errors.New("instruction is required")
	ErrUnsupportedInput   = errors.New("unsupported input content type")
	ErrMissingInput       = errors.New("record has no input payload")
	ErrInvalidParameters  = errors.New("invalid node parameters")
	ErrUnknownNode        = errors.New("unknown node type")
	ErrEmptyModelReply    = errors.New("model reply contains no text content")
	ErrUploadFailed       = errors.New("file upload to storage failed")
)
