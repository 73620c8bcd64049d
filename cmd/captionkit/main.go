package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sant0-9/captionkit/internal/tui"
)

var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "captionkit",
	Short: "Bilingual social media captions from your photos",
	Long: `captionkit looks at a photo and writes social media captions in your
language and in English. Pick a favorite, edit it, ask the AI to improve it,
and keep a history of what you posted.

Run without arguments for the interactive app, or:
  generate <image>  - print captions for one image
  history           - list saved captions`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also log to stderr")
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal; logs go to the file only.
	env, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer env.Close()

	deps := tui.Deps{
		Logger:   env.log,
		Store:    env.store,
		Profiles: env.profiles,
	}
	if !env.firstRun {
		deps.Config = env.cfg
	}

	app := tui.NewApp(deps)
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	app.SetProgram(p)

	_, err = p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
