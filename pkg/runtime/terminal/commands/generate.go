package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	cliexport "github.com/agro-tools/ranch-atlas/pkg/runtime/terminal/export"
	"github.com/agro-tools/ranch-atlas/pkg/services/export"
	"github.com/agro-tools/ranch-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	reports string
	from    string
	to      string
	format  string
	out     string

	generator report.Generator
	reporter  *cliexport.Reporter
}

func NewGenerateCmd(generator report.Generator, reporter *cliexport.Reporter) *cobra.Command {
	gc := &GenerateCmd{generator: generator, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report artifact and write it to a file",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.reports, "reports", "", "Comma-separated report types (e.g. monthly_summary,financial_summary)")
	cmd.Flags().StringVar(&gc.from, "from", "", "Period start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&gc.to, "to", "", "Period end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&gc.format, "format", "xlsx", "Output format: xlsx or pdf")
	cmd.Flags().StringVar(&gc.out, "out", "", "Output path (defaults to the derived filename)")

	_ = cmd.MarkFlagRequired("reports")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	period, err := parsePeriod(gc.from, gc.to)
	if err != nil {
		return err
	}

	var types []domain.ReportType
	for _, raw := range strings.Split(gc.reports, ",") {
		rt := domain.ReportType(strings.TrimSpace(raw))
		if !rt.Valid() {
			return fmt.Errorf("unknown report type %q", raw)
		}
		types = append(types, rt)
	}

	format, err := export.NormalizeFormat(gc.format)
	if err != nil {
		return err
	}

	payload, err := gc.generator.Generate(ctx, domain.ReportRequest{
		Types:  types,
		Period: period,
	})
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	var artifact *domain.Artifact
	switch format {
	case export.FormatDocument:
		artifact, err = export.NewDocumentRenderer().Render(payload, types, period)
	default:
		artifact, err = export.NewWorkbookRenderer().Render(payload, types, period)
	}
	if err != nil {
		return fmt.Errorf("failed to render artifact: %w", err)
	}

	out := gc.out
	if out == "" {
		out = artifact.Filename
	}
	if err := os.WriteFile(out, artifact.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	if err := gc.reporter.HandlePayload(period, types, payload); err != nil {
		return err
	}

	cmd.Printf("wrote %s (%d bytes)\n", out, len(artifact.Bytes))
	return nil
}

func parsePeriod(from, to string) (domain.Period, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return domain.Period{}, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", from)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return domain.Period{}, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", to)
	}
	period := domain.Period{Start: start, End: end}
	if !period.Valid() {
		return domain.Period{}, fmt.Errorf("invalid period: %s is after %s", from, to)
	}
	return period, nil
}
