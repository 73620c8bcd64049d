package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sant0-9/captionkit/internal/profile"
)

var newProfile profile.Profile

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List business profiles available to --profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(verbose)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		if env.dir == nil {
			return fmt.Errorf("profiles directory unavailable: %s", env.cfg.ProfilesDir)
		}

		names := env.dir.List()
		if len(names) == 0 {
			fmt.Fprintf(out, "No profiles yet. Add one with 'captionkit profiles add <name>' or put <name>.yaml files in %s\n", env.dir.Dir())
			return nil
		}
		for _, name := range names {
			marker := "  "
			if name == env.cfg.Profile {
				marker = "* "
			}
			fmt.Fprintln(out, marker+name)
		}
		return nil
	},
}

var profilesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create or replace a business profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(verbose)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.dir == nil {
			return fmt.Errorf("profiles directory unavailable: %s", env.cfg.ProfilesDir)
		}

		p := newProfile
		if p.Name == "" {
			p.Name = args[0]
		}
		if err := env.dir.Save(args[0], &p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s (%d fields). Use it with --profile %s\n", args[0], len(p.Fields()), args[0])
		return nil
	},
}

func init() {
	f := profilesAddCmd.Flags()
	f.StringVar(&newProfile.Name, "business", "", "Business name (defaults to the profile name)")
	f.StringVar(&newProfile.Industry, "industry", "", "Industry")
	f.StringVar(&newProfile.Audience, "audience", "", "Target audience")
	f.StringVar(&newProfile.Tone, "tone", "", "Brand voice")
	f.StringVar(&newProfile.Goals, "goals", "", "Goals")
	f.StringVar(&newProfile.Location, "location", "", "Location")
	f.StringVar(&newProfile.Products, "products", "", "Products or services")
	f.StringVar(&newProfile.Website, "website", "", "Website")

	profilesCmd.AddCommand(profilesAddCmd)
	rootCmd.AddCommand(profilesCmd)
}
