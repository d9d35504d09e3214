package cmd

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finvest/gemini"
	"github.com/google/subcommands"
)

type visionCmd struct {
	size string
	out  string
}

func (*visionCmd) Name() string     { return "vision" }
func (*visionCmd) Synopsis() string { return "generate a vision-board image from a prompt" }
func (*visionCmd) Usage() string {
	return `fv vision [-size 1K|2K|4K] [-o <file>] <prompt...>

  Generate a vision-board image for the given prompt and write it to a
  PNG file. Requires GEMINI_API_KEY to be set.
`
}

func (c *visionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.size, "size", "1K", "image resolution tier (1K, 2K or 4K)")
	f.StringVar(&c.out, "o", "vision-board.png", "output file")
}

func (c *visionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prompt := strings.TrimSpace(strings.Join(f.Args(), " "))
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "Error: a prompt is required")
		return subcommands.ExitUsageError
	}
	size, err := gemini.ParseImageSize(c.size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	studio, _, err := newStudio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	image, err := studio.VisionBoard(ctx, prompt, size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating image: %v\n", err)
		return subcommands.ExitFailure
	}
	if image == "" {
		fmt.Fprintln(os.Stderr, "The service produced no image for this prompt.")
		return subcommands.ExitFailure
	}

	// The service returns a data URI; the payload follows the comma.
	payload := image[strings.Index(image, ",")+1:]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding image: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %s\n", c.out)
	return subcommands.ExitSuccess
}
