package main

import (
	"fmt"
	"strings"
	"time"

	"chameleon-be/pkg/editor"
	"chameleon-be/pkg/writing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	tone      string
	purpose   string
	genre     string
	structure string
	timeout   time.Duration
)

var completeCmd = &cobra.Command{
	Use:   "complete [text]",
	Short: "Request a continuation for text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		suggester := editor.NewHTTPSuggester(serverURL, timeout)
		suggester.Token = token

		started := time.Now()
		excerpt := editor.ExtractContext(text, len([]rune(text)))
		suggestion, err := suggester.Suggest(cmd.Context(), editor.Request{
			Text:      excerpt,
			Tone:      tone,
			Purpose:   purpose,
			Genre:     genre,
			Structure: structure,
		})
		if err != nil {
			color.Red("Failed: %v", err)
			return err
		}

		color.Cyan("%s / %s / %s / %s (%s)", tone, purpose, genre, structure, time.Since(started).Round(time.Millisecond))
		fmt.Printf("%s", text)
		color.New(color.Faint).Printf(" %s\n", suggestion)
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVar(&tone, "tone", writing.DefaultTone, "tone: "+values(writing.DimensionTone))
	completeCmd.Flags().StringVar(&purpose, "purpose", writing.DefaultPurpose, "purpose: "+values(writing.DimensionPurpose))
	completeCmd.Flags().StringVar(&genre, "genre", writing.DefaultGenre, "genre: "+values(writing.DimensionGenre))
	completeCmd.Flags().StringVar(&structure, "structure", writing.DefaultStructure, "structure: "+values(writing.DimensionStructure))
	completeCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
}

func values(d writing.Dimension) string {
	t, ok := writing.TableFor(d)
	if !ok {
		return ""
	}
	return strings.Join(t.Values(), ", ")
}
