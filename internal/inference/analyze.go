package inference

import (
	"context"
	"fmt"
	"io"

	"github.com/leca/image-store/internal/config"
)

// Hints is printed when an analysis fails.
const Hints = `Please ensure:
1. Ollama is installed and running ('ollama serve')
2. You have a vision-capable model pulled ('ollama pull llama3.2-vision')
3. The image file exists and is readable`

// Analyze checks that the inference service is reachable and the image is
// readable, then describes the image. Progress lines are written to out.
func Analyze(ctx context.Context, cfg *config.Inference, c *Client, out io.Writer) (string, error) {
	if err := CheckConnection(ctx, cfg.Addr, cfg.DialTimeout); err != nil {
		fmt.Fprintln(out, "ERROR: inference server is not running. Please start it with 'ollama serve'")
		return "", err
	}
	fmt.Fprintln(out, "Inference server is running")

	if err := CheckImage(cfg.ImagePath); err != nil {
		fmt.Fprintf(out, "ERROR: image file not readable: %s\n", cfg.ImagePath)
		return "", err
	}
	fmt.Fprintf(out, "Image file is accessible: %s\n", cfg.ImagePath)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	fmt.Fprintln(out, "Sending image for analysis...")
	return c.Describe(ctx, cfg.ImagePath, cfg.Prompt)
}
