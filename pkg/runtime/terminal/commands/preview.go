package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/runtime/terminal/export"
	"github.com/agro-tools/ranch-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type PreviewCmd struct {
	from string
	to   string

	generator report.Generator
	reporter  *export.Reporter
}

func NewPreviewCmd(generator report.Generator, reporter *export.Reporter) *cobra.Command {
	pc := &PreviewCmd{generator: generator, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the headline counters for a period",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.from, "from", "", "Period start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&pc.to, "to", "", "Period end date (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (pc *PreviewCmd) run(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	period, err := parsePeriod(pc.from, pc.to)
	if err != nil {
		return err
	}

	preview, err := pc.generator.Preview(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to compute preview: %w", err)
	}

	return pc.reporter.HandlePreview(period, preview)
}
