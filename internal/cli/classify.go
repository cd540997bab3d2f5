package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <message>",
		Short: "Show the intent a message resolves to",
		Long: `Classify a message and show which stage decided it.

Examples:
  jinbo classify "what is his github profile"
  jinbo classify --json "hello there"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := opts.newClassifier(opts.logger(cmd))
			if err != nil {
				return err
			}

			cl := classifier.Classify(strings.Join(args, " "))
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), cl)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "intent:     %s\nstage:      %s\nnormalized: %q\n", cl.Intent, cl.Stage, cl.Normalized)
			return err
		},
	}
}
