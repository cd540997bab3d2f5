package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/fuzzy"
)

type searchOutput struct {
	Found      bool               `json:"found"`
	Result     *fuzzy.MatchResult `json:"result,omitempty"`
	Validation *fuzzy.Validation  `json:"validation,omitempty"`
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Run the fuzzy knowledge search",
		Long: `Search every response and personal entry of the knowledge base and
show the best hit with its confidence and validation.

Examples:
  jinbo search "prateesh sulikery"
  jinbo search --kb ./other.json "spring boot"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := opts.loadKnowledgeBase()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			out := searchOutput{}
			if res, ok := fuzzy.NewIndex(kb).Search(query); ok {
				v := fuzzy.Validate(query, res)
				out = searchOutput{Found: true, Result: &res, Validation: &v}
			}

			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			if !out.Found {
				_, err = fmt.Fprintln(w, "no result")
				return err
			}
			_, err = fmt.Fprintf(w, "key:        %s (%s)\nconfidence: %d%%\nvalid:      %t (score %d, terms %v)\ncontent:    %s\n",
				out.Result.Key, out.Result.Type, out.Result.Confidence,
				out.Validation.IsValid, out.Validation.ValidationScore, out.Validation.MatchedTerms,
				out.Result.Content)
			return err
		},
	}
}
