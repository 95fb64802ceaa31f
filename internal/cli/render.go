package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/comunicado/internal/announcement"
	apperr "github.com/youruser/comunicado/internal/errors"
	"github.com/youruser/comunicado/internal/validate"
)

type renderOptions struct {
	req       announcement.Request
	jsonPath  string
	csvPath   string
	outputDir string
	template  string
}

func newRenderCommand(o *rootOptions) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render announcements without running the server",
		Long: `Render one announcement from flags or a JSON file, or a batch from a CSV
file with the columns source, event_type, subject_label, outcome, location,
tier and date. The path of each written file is printed to stdout.`,
		Example: `  comunicado render --source "EXPANSÃO" --event-type "CONCLUSÃO DE ESTÁGIO" \
    --subject "XANDECO (183)" --outcome "SEM APROVEITAMENTO:" \
    --location "EXPANSÃO REGIONAL" --tier "GRAU V" --date 04/11/2025
  comunicado render --json request.json
  comunicado render --csv batch.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, o, ro)
		},
	}

	f := cmd.Flags()
	f.StringVar(&ro.req.Source, "source", "", "source line")
	f.StringVar(&ro.req.EventType, "event-type", "", "event type line")
	f.StringVar(&ro.req.SubjectLabel, "subject", "", `subject label, "NAME (NUMBER)"`)
	f.StringVar(&ro.req.Outcome, "outcome", "", "outcome line")
	f.StringVar(&ro.req.Location, "location", "", "location line")
	f.StringVar(&ro.req.Tier, "tier", "", "tier line")
	f.StringVar(&ro.req.Date, "date", "", "date, DD/MM/YYYY")
	f.StringVar(&ro.jsonPath, "json", "", `read the request from a JSON file ("-" for stdin)`)
	f.StringVar(&ro.csvPath, "csv", "", "render every row of a CSV file")
	f.StringVarP(&ro.outputDir, "output", "o", "", "output directory (overrides config)")
	f.StringVar(&ro.template, "template", "", "template path or URL (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("json", "csv")
	return cmd
}

func runRender(cmd *cobra.Command, o *rootOptions, ro *renderOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	reqs, err := ro.requests(cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg := o.cfg
	if ro.outputDir != "" {
		cfg.OutputDir = ro.outputDir
	}
	if ro.template != "" {
		cfg.Assets.Template = ro.template
	}
	comp, err := newCompositor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	var (
		v      validate.Schema
		failed []error
	)
	for i, req := range reqs {
		if err := v.Validate(req); err != nil {
			logger.Error("invalid request", "row", i+1, "subject", req.SubjectLabel, "err", apperr.JoinMessages(err))
			failed = append(failed, fmt.Errorf("request %d: %w", i+1, err))
			continue
		}
		path, err := comp.Render(ctx, req)
		if err != nil {
			logger.Error("render failed", "row", i+1, "subject", req.SubjectLabel, "err", err)
			failed = append(failed, fmt.Errorf("request %d: %w", i+1, err))
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	prog.done(fmt.Sprintf("Rendered %d of %d announcements", len(reqs)-len(failed), len(reqs)))

	return errors.Join(failed...)
}

// requests returns what to render: the CSV rows, or a single request read
// from JSON with any explicitly set flags applied on top.
func (ro *renderOptions) requests(stdin io.Reader) ([]announcement.Request, error) {
	if ro.csvPath != "" {
		reqs, err := announcement.LoadRequestsCSV(ro.csvPath)
		if err != nil {
			return nil, err
		}
		if len(reqs) == 0 {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "%s has no rows", ro.csvPath)
		}
		return reqs, nil
	}

	req := ro.req
	if ro.jsonPath != "" {
		fromFile, err := readRequestJSON(ro.jsonPath, stdin)
		if err != nil {
			return nil, err
		}
		req = merge(fromFile, ro.req)
	}
	return []announcement.Request{req}, nil
}

func readRequestJSON(path string, stdin io.Reader) (announcement.Request, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return announcement.Request{}, apperr.New(apperr.ErrCodeNotFound, "request file %s not found", path)
			}
			return announcement.Request{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "open %s", path)
		}
		defer f.Close()
		r = f
	}

	var req announcement.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return announcement.Request{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode request JSON")
	}
	return req, nil
}

// merge overlays the non-empty fields of over onto base.
func merge(base, over announcement.Request) announcement.Request {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Source, over.Source)
	set(&base.EventType, over.EventType)
	set(&base.SubjectLabel, over.SubjectLabel)
	set(&base.Outcome, over.Outcome)
	set(&base.Location, over.Location)
	set(&base.Tier, over.Tier)
	set(&base.Date, over.Date)
	return base
}
