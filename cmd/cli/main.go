// The cli binary drives the publishing pipeline by hand: sending a post to
// the channel, generating a newsletter from the sent posts, and publishing
// a generated newsletter.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notigram/internal/observability/logging"
	"notigram/internal/usecase"
)

func main() {
	logger := logging.NewTextLogger()

	root := &cobra.Command{
		Use:           "notigram",
		Short:         "Publish Notion pages to a Telegram channel and roll them into newsletters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newChannelCmd(logger))
	root.AddCommand(newNewsletterCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// report prints the operation outcome and exits non-zero for expected-empty
// results so scripts can tell "nothing to do" from success.
func report(result usecase.Result) {
	fmt.Println(result.Message)
	if result.Code != usecase.CodeOK {
		os.Exit(result.Code)
	}
}
