package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/enertools/meter-billing/pkg/models/domain"
	"github.com/enertools/meter-billing/pkg/runtime/terminal/export"
	"github.com/enertools/meter-billing/pkg/services/config"
	"github.com/enertools/meter-billing/pkg/services/metering"
)

const defaultPeriodDays = 30

type BillCmd struct {
	configPath string
	profile    string
	moduleID   string
	pointID    string
	from       string
	to         string
	rate       string
	asJSON     bool
	reporter   *export.Reporter
}

func NewBillCmd(reporter *export.Reporter) *cobra.Command {
	bc := &BillCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Compute an invoice for a measuring point",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.configPath, "config", DefaultConfigPath(),
		"Path to the .oceancfg profiles file")
	cmd.Flags().StringVar(&bc.profile, "profile", "", "Configuration profile to bill against")
	cmd.Flags().StringVar(&bc.moduleID, "module", "", "Cloud Ocean module ID")
	cmd.Flags().StringVar(&bc.pointID, "point", "", "Measuring point ID")
	cmd.Flags().StringVar(&bc.from, "from", "", "Period start (YYYY-MM-DD, default 30 days ago)")
	cmd.Flags().StringVar(&bc.to, "to", "", "Period end (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&bc.rate, "rate", "", "Price per kWh (overrides the profile rate)")
	cmd.Flags().BoolVar(&bc.asJSON, "json", false, "Print the invoice as JSON")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("module")
	_ = cmd.MarkFlagRequired("point")

	return cmd
}

func (bc *BillCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	registry, err := config.NewRegistry(bc.configPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %s: %w", bc.configPath, err)
	}

	now := time.Now()
	from, err := parseDateFlag(bc.from, now.AddDate(0, 0, -defaultPeriodDays))
	if err != nil {
		return fmt.Errorf("invalid --from date, expected YYYY-MM-DD: %w", err)
	}
	to, err := parseDateFlag(bc.to, now)
	if err != nil {
		return fmt.Errorf("invalid --to date, expected YYYY-MM-DD: %w", err)
	}

	explorer := metering.NewExplorer(registry, metering.Options{})
	generator, err := explorer.GetInvoiceGenerator(ctx, bc.profile)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", bc.profile, err)
	}

	inv, err := generator.GenerateInvoice(ctx, domain.InvoiceRequest{
		Profile:  bc.profile,
		ModuleID: bc.moduleID,
		PointID:  bc.pointID,
		Period:   domain.BillingPeriod{Start: from, End: to},
		Rate:     bc.rate,
	})
	if err != nil {
		return fmt.Errorf("failed to generate invoice: %w", err)
	}

	if bc.asJSON {
		return bc.reporter.HandleJSON(inv)
	}
	return bc.reporter.Handle(inv)
}

func parseDateFlag(value string, defaultDate time.Time) (time.Time, error) {
	if value == "" {
		return defaultDate, nil
	}
	return time.Parse("2006-01-02", value)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oceancfg"
	}
	return filepath.Join(home, ".oceancfg")
}
