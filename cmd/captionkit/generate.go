package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sant0-9/captionkit/internal/generator"
	"github.com/sant0-9/captionkit/internal/llm"
	"github.com/sant0-9/captionkit/internal/session"
)

var (
	genVibe         string
	genLength       string
	genLanguage     string
	genInstructions string
	genProfile      string
)

var generateCmd = &cobra.Command{
	Use:   "generate [image]",
	Short: "Print caption options for one image",
	Long: `Generates bilingual caption options for an image and prints them.
The image may be omitted when --instructions describe the post.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genVibe, "vibe", "", "Tone of the captions (default from config)")
	generateCmd.Flags().StringVar(&genLength, "length", "", "short, medium or long (default from config)")
	generateCmd.Flags().StringVar(&genLanguage, "lang", "", "Local language paired with English (default from config)")
	generateCmd.Flags().StringVar(&genInstructions, "instructions", "", "Extra guidance for the captions")
	generateCmd.Flags().StringVar(&genProfile, "profile", "", "Business profile name")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && genInstructions == "" {
		return fmt.Errorf("give an image path or --instructions")
	}

	env, err := bootstrap(verbose)
	if err != nil {
		return err
	}
	defer env.Close()

	cfg := env.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}

	params := session.Params{
		Vibe:         firstNonEmpty(genVibe, cfg.Vibe),
		Length:       firstNonEmpty(genLength, cfg.Length),
		Language:     firstNonEmpty(genLanguage, cfg.Language),
		Instructions: genInstructions,
		Profile:      firstNonEmpty(genProfile, cfg.Profile),
	}
	if len(args) == 1 {
		params.ImagePath = args[0]
	}

	gen := generator.New(generator.Options{
		Provider: provider,
		Model:    cfg.Model,
		Profiles: env.profiles,
		Sink:     env.store,
		Logger:   env.log,
		Notifier: generator.NotifierFunc(func(e generator.Event) {
			if e.Kind == generator.KindRetry {
				fmt.Fprintln(cmd.ErrOrStderr(), e.Message)
			}
		}),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := session.New(params)
	if err := gen.Generate(ctx, sess, generator.GenerateOptions{}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	heading := color.New(color.FgMagenta, color.Bold)
	muted := color.New(color.FgHiBlack)
	for i, c := range sess.Snapshot().Candidates {
		heading.Fprintf(out, "--- Caption %d ---\n", i+1)
		fmt.Fprintln(out, c.Primary)
		if c.Secondary != "" {
			fmt.Fprintln(out)
			muted.Fprintln(out, c.Secondary)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
