package textract

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"docbridge/internal/config"
	"docbridge/internal/port"
)

type textractClient struct {
	client *textract.Client
}

// NewTextractClient creates a Textract-backed TextDetector. The static key
// pair is required; construction fails before any request is made.
func NewTextractClient(cfg *config.AWSConfig) (port.TextDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var txOpts []func(*textract.Options)
	if cfg.Endpoint != "" {
		txOpts = append(txOpts, func(o *textract.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &textractClient{client: textract.NewFromConfig(awsCfg, txOpts...)}, nil
}

func (c *textractClient) DetectText(ctx context.Context, input port.DetectTextInput) (*port.DetectTextOutput, error) {
	result, err := c.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: input.Document},
	})
	if err != nil {
		return nil, fmt.Errorf("textract detect document text: %w", err)
	}
	return &port.DetectTextOutput{Blocks: toBlocks(result.Blocks)}, nil
}

func (c *textractClient) StartDetection(ctx context.Context, input port.StartDetectionInput) (string, error) {
	result, err := c.client.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(input.Bucket),
				Name:   aws.String(input.Key),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("textract start text detection: %w", err)
	}
	return aws.ToString(result.JobId), nil
}

func (c *textractClient) GetDetection(ctx context.Context, input port.GetDetectionInput) (*port.DetectionPage, error) {
	req := &textract.GetDocumentTextDetectionInput{JobId: aws.String(input.JobID)}
	if input.NextToken != "" {
		req.NextToken = aws.String(input.NextToken)
	}

	result, err := c.client.GetDocumentTextDetection(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("textract get text detection: %w", err)
	}

	return &port.DetectionPage{
		Status:        port.JobStatus(result.JobStatus),
		StatusMessage: aws.ToString(result.StatusMessage),
		Blocks:        toBlocks(result.Blocks),
		NextToken:     aws.ToString(result.NextToken),
	}, nil
}

func toBlocks(blocks []types.Block) []port.Block {
	out := make([]port.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, port.Block{
			Kind: port.BlockKind(b.BlockType),
			Text: aws.ToString(b.Text),
		})
	}
	return out
}
