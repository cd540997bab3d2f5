package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	chatRepository "github.com/Prateesh-Sulikeri/JinBo/internal/api/chat/repository"
	chatService "github.com/Prateesh-Sulikeri/JinBo/internal/api/chat/service"
	"github.com/Prateesh-Sulikeri/JinBo/internal/config"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/fuzzy"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/utils"
)

func newAskCmd(opts *options) *cobra.Command {
	var live bool
	var variation int

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Answer a message the way the chat endpoint would",
		Long: `Run the full chat pipeline on a message. Live platform data is only
fetched with --live; otherwise only the knowledge base is used.

Examples:
  jinbo ask "hello"
  jinbo ask --live "show me his github profile"
  jinbo ask --variation 1 "hi"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd)

			kb, err := opts.loadKnowledgeBase()
			if err != nil {
				return err
			}
			classifier, err := opts.newClassifier(logger)
			if err != nil {
				return err
			}

			sources := profile.Sources{LinkedIn: profile.NewLinkedInFetcher(kb.Social)}
			if live {
				sources = config.NewProfileSources(kb, nil)
			}
			refresher := profile.NewRefresher(logger, profile.NewStore(profile.DefaultStaleAfter), sources)

			var picker utils.Picker = utils.NewRandomPicker()
			if variation >= 0 {
				picker = utils.FixedPicker(variation)
			}

			svc := chatService.NewChatService(
				logger,
				classifier,
				fuzzy.NewIndex(kb),
				chatService.NewResponder(kb, picker),
				refresher,
				kb,
				chatRepository.New(nil, logger),
				utils.New(),
				config.NewValidator(),
			)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			resp, err := svc.ProcessMessage(ctx, chat.ChatRequest{Message: strings.Join(args, " ")})
			if err != nil {
				return err
			}

			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "[%s via %s]\n%s\n", resp.Debug.Intent, resp.Debug.Method, resp.Response)
			return err
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "fetch GitHub, LeetCode and Medium data before answering")
	cmd.Flags().IntVar(&variation, "variation", -1, "always pick this response variation instead of a random one")
	return cmd
}
