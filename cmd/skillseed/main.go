package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/skills"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/openai"
	"github.com/yungbote/aicourse-backend/internal/platform/qdrant"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	logMode   string
	batchSize int
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "skillseed",
		Short:         "Manage the skills collection used for nearest-skill lookup",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.logMode, "log-mode", "development", "logger mode (development|production)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Minute, "overall deadline")

	root.AddCommand(newSeedCmd(opts), newSearchCmd(opts))
	return root
}

func newSeedCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Create the collection if needed and upsert every skill in the file",
		Long: `Embed every skill listed in the file and upsert it into the qdrant skills collection.

The file is either YAML (a list of {name, id} entries, .yaml/.yml) or plain text
with one skill name per line. Blank lines and lines starting with # are ignored.

Requires OPENAI_API_KEY and QDRANT_URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := readSkillsFile(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			lookup, log, err := newLookup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			res, err := lookup.Seed(ctx, list, opts.batchSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "collection_created=%v upserted=%d skipped=%d\n", res.Created, res.Upserted, res.Skipped)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 64, "points per upsert request")
	return cmd
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search [text]",
		Short: "Print the skill nearest to the given text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			lookup, log, err := newLookup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			tag, err := lookup.NearestSkillForText(ctx, args[0])
			if err != nil {
				return err
			}
			if tag == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", tag.ID, tag.Name)
			return nil
		},
	}
}

func newLookup(opts *options) (*skills.Lookup, *logger.Logger, error) {
	log, err := logger.New(opts.logMode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	client, err := openai.NewClient(log, openai.ConfigFromEnv())
	if err != nil {
		return nil, nil, fmt.Errorf("init openai client: %w", err)
	}
	qcfg, err := qdrant.ResolveConfigFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("qdrant config: %w", err)
	}
	store, err := qdrant.NewStore(log, qcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init qdrant store: %w", err)
	}
	gw := gateway.New(log, client, nil, gateway.DefaultMaxConcurrency)
	return skills.NewLookup(log, store, gw, gw), log, nil
}
