// Package cli implements the jinbo command, which runs the chat pipeline
// offline against a knowledge base file.
package cli

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/nlp"
)

type options struct {
	kbPath  string
	asJSON  bool
	verbose bool
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "jinbo",
		Short:         "JinBo - portfolio chatbot toolkit",
		Long:          `Classify messages, search the knowledge base and preview answers without starting the server.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	defaultKB := os.Getenv("KNOWLEDGE_BASE_PATH")
	if defaultKB == "" {
		defaultKB = "./knowledge-base.json"
	}

	root.PersistentFlags().StringVar(&opts.kbPath, "kb", defaultKB, "path to the knowledge base JSON file")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline decisions to stderr")

	root.AddCommand(
		newClassifyCmd(opts),
		newSearchCmd(opts),
		newAskCmd(opts),
	)
	return root
}

func (o *options) loadKnowledgeBase() (*knowledge.Base, error) {
	return knowledge.LoadFile(o.kbPath)
}

func (o *options) logger(cmd *cobra.Command) *logrus.Logger {
	logger := log.NewDiscardLogger()
	if o.verbose {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func (o *options) newClassifier(logger *logrus.Logger) (*nlp.Classifier, error) {
	return nlp.NewClassifier(logger, nlp.DefaultRuleTable(), 0)
}

func printJSON(w io.Writer, v any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
