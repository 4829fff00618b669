package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/enertools/meter-billing/pkg/services/config"
)

type ProfilesCmd struct {
	configPath string
	out        io.Writer
}

func NewProfilesCmd(out io.Writer) *cobra.Command {
	pc := &ProfilesCmd{out: out}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List configured Cloud Ocean profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.configPath, "config", DefaultConfigPath(),
		"Path to the .oceancfg profiles file")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	registry, err := config.NewRegistry(pc.configPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %s: %w", pc.configPath, err)
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}

	for _, profile := range profiles {
		fmt.Fprintln(pc.out, profile)
	}
	return nil
}
