// Package inference sends stored images to a vision model served behind an
// OpenAI compatible chat completions API, such as a local Ollama instance.
package inference

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/leca/image-store/internal/config"
	"github.com/leca/image-store/internal/imageproc"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	ErrConnection    = errors.New("inference service unreachable")
	ErrImageNotFound = errors.New("image not found")
	ErrInference     = errors.New("inference request failed")
)

// CheckConnection dials addr over TCP and closes the connection immediately.
func CheckConnection(ctx context.Context, addr string, timeout time.Duration) error {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConnection, addr, err)
	}
	return conn.Close()
}

// CheckImage verifies that path exists and at least one byte can be read from it.
func CheckImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageNotFound, err)
	}
	defer f.Close()

	var b [1]byte
	if _, err := f.Read(b[:]); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: cannot read %s: %v", ErrImageNotFound, path, err)
	}
	return nil
}

// Client talks to the chat completions endpoint of the inference service.
type Client struct {
	client       openai.Client
	model        string
	maxDimension int
}

// NewClient builds a Client from cfg. Requests are never retried.
func NewClient(cfg *config.Inference) *Client {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	)
	return &Client{
		client:       client,
		model:        cfg.Model,
		maxDimension: cfg.MaxDimension,
	}
}

// dataURL encodes image bytes as a base64 data URL, taking the MIME type from
// the file extension and falling back to the detected format.
func dataURL(path string, data []byte) string {
	ct := imageproc.ContentType(path)
	if ct == "application/octet-stream" {
		if format := imageproc.DetectFormat(data); format != "" {
			ct = "image/" + format
		}
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (c *Client) chatParams(prompt, imageURL string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							{OfText: &openai.ChatCompletionContentPartTextParam{
								Text: prompt,
							}},
							{OfImageURL: &openai.ChatCompletionContentPartImageParam{
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL: imageURL,
								},
							}},
						},
					},
				},
			},
		},
	}
}

// Describe sends the image at path together with prompt and returns the raw
// JSON response body.
func (c *Client) Describe(ctx context.Context, path, prompt string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageNotFound, err)
	}
	defer f.Close()

	data, err := imageproc.FitWithin(f, c.maxDimension)
	if err != nil {
		return "", fmt.Errorf("%w: preparing image: %v", ErrInference, err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, c.chatParams(prompt, dataURL(path, data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}
	return resp.RawJSON(), nil
}
