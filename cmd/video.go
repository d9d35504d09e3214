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

type videoCmd struct {
	image  string
	aspect string
	out    string
}

func (*videoCmd) Name() string     { return "video" }
func (*videoCmd) Synopsis() string { return "animate a vision-board image into a short video" }
func (*videoCmd) Usage() string {
	return `fv video -image <file> [-aspect 16:9|9:16] [-o <file>] <prompt...>

  Submit a goal-video generation job animating the given image, wait
  for it to complete (this can take minutes), and write the video to a
  file. Requires GEMINI_API_KEY with access to video generation.
`
}

func (c *videoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.image, "image", "", "source image file to animate (required)")
	f.StringVar(&c.aspect, "aspect", "16:9", "video aspect ratio (16:9 or 9:16)")
	f.StringVar(&c.out, "o", "goal-video.mp4", "output file")
}

func (c *videoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prompt := strings.TrimSpace(strings.Join(f.Args(), " "))
	if prompt == "" || c.image == "" {
		fmt.Fprintln(os.Stderr, "Error: a prompt and a source image are required")
		return subcommands.ExitUsageError
	}
	ratio, err := gemini.ParseAspectRatio(c.aspect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading image %q: %v\n", c.image, err)
		return subcommands.ExitFailure
	}

	studio, _, err := newStudio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintln(os.Stderr, "Generating video, this can take a few minutes...")
	video, err := studio.GoalVideo(ctx, gemini.VideoRequest{
		Prompt:      prompt,
		ImageData:   base64.StdEncoding.EncodeToString(data),
		AspectRatio: ratio,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating video: %v\n", err)
		fmt.Fprintln(os.Stderr, "Video generation usually requires a billing-enabled project.")
		return subcommands.ExitFailure
	}
	if video == nil {
		fmt.Fprintln(os.Stderr, "The service produced no video for this request.")
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(c.out, video, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %s\n", c.out)
	return subcommands.ExitSuccess
}
