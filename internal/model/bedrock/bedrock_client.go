package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"docbridge/internal/config"
	"docbridge/internal/domain"
	"docbridge/internal/port"
)

var imageFormats = map[string]types.ImageFormat{
	"image/png":  types.ImageFormatPng,
	"image/jpeg": types.ImageFormatJpeg,
	"image/gif":  types.ImageFormatGif,
	"image/webp": types.ImageFormatWebp,
}

type bedrockClient struct {
	client *bedrockruntime.Client
}

// NewBedrockClient creates a Bedrock-backed ModelInvoker. The static key
// pair is required; construction fails before any request is made.
func NewBedrockClient(cfg *config.AWSConfig) (port.ModelInvoker, error) {
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

	var brOpts []func(*bedrockruntime.Options)
	if cfg.Endpoint != "" {
		brOpts = append(brOpts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &bedrockClient{client: bedrockruntime.NewFromConfig(awsCfg, brOpts...)}, nil
}

// Converse sends one user message holding the instruction text plus the file
// as an image or document block, and extracts the first text block of the
// reply.
func (c *bedrockClient) Converse(ctx context.Context, input port.ConverseInput) (*port.ConverseOutput, error) {
	content, err := buildContentBlocks(input)
	if err != nil {
		return nil, err
	}

	result, err := c.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(input.ModelID),
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: content,
		}},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(input.MaxTokens),
			Temperature: aws.Float32(input.Temperature),
			TopP:        aws.Float32(input.TopP),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock converse: %w", err)
	}

	text, err := firstText(result.Output)
	if err != nil {
		return nil, err
	}

	out := &port.ConverseOutput{
		Text:       text,
		StopReason: string(result.StopReason),
	}
	if result.Usage != nil {
		out.Usage = domain.TokenUsage{
			InputTokens:  aws.ToInt32(result.Usage.InputTokens),
			OutputTokens: aws.ToInt32(result.Usage.OutputTokens),
			TotalTokens:  aws.ToInt32(result.Usage.TotalTokens),
		}
	}
	return out, nil
}

func buildContentBlocks(input port.ConverseInput) ([]types.ContentBlock, error) {
	blocks := []types.ContentBlock{
		&types.ContentBlockMemberText{Value: input.Instruction},
	}

	switch {
	case domain.IsPDF(input.ContentType):
		blocks = append(blocks, &types.ContentBlockMemberDocument{
			Value: types.DocumentBlock{
				Format: types.DocumentFormatPdf,
				Name:   aws.String(documentName(input.FileName)),
				Source: &types.DocumentSourceMemberBytes{Value: input.FileBytes},
			},
		})
	case domain.IsImage(input.ContentType):
		format, ok := imageFormats[input.ContentType]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInput, input.ContentType)
		}
		blocks = append(blocks, &types.ContentBlockMemberImage{
			Value: types.ImageBlock{
				Format: format,
				Source: &types.ImageSourceMemberBytes{Value: input.FileBytes},
			},
		})
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedInput, input.ContentType)
	}

	return blocks, nil
}

func firstText(output types.ConverseOutput) (string, error) {
	message, ok := output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", domain.ErrEmptyModelReply
	}
	for _, block := range message.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			return text.Value, nil
		}
	}
	return "", domain.ErrEmptyModelReply
}

// documentName derives the document block name from the original file name.
// Bedrock rejects names with most punctuation, so anything outside the
// accepted set collapses to a dash.
func documentName(fileName string) string {
	name := strings.TrimSuffix(fileName, ".pdf")
	if name == "" {
		return "document"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '(', r == ')', r == '[', r == ']':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
