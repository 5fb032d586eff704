package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/report"
)

var reportFilters = []string{"persona_id", "estado", "area_estudio", "nivel", "fecha_desde", "fecha_hasta", "calificacion_minima"}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the exam report as JSON",
		RunE:  runReport,
	}
	f := cmd.Flags()
	f.Uint("exam-id", 0, "Report a single exam")
	for _, name := range reportFilters {
		f.String(name, "", "Filter by "+name)
	}
	f.Bool("solo-activos", false, "Only active exams")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	s := config.Load(viperForCmd(cmd))
	config.Init(s.LogLevel)
	config.Logger.SetOutput(cmd.ErrOrStderr())
	if err := config.Connect(cmd.Context(), s.DBDriver, s.DBDSN); err != nil {
		return err
	}

	values := url.Values{}
	for _, name := range reportFilters {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			values.Set(name, v)
		}
	}
	q := report.ParseQuery(values)
	if id, _ := cmd.Flags().GetUint("exam-id"); id > 0 {
		q.ExamID = &id
	}
	q.SoloActivos, _ = cmd.Flags().GetBool("solo-activos")

	rep, err := report.NewReportContainer(config.DB).Service.GenerateCompleteReport(cmd.Context(), q)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("output"); path != "-" && path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		err = writeReport(f, rep)
	} else {
		err = encodeReport(cmd.OutOrStdout(), rep)
	}
	if err != nil {
		return err
	}
	config.Logger.WithField("records", rep.Metadata.TotalRecords).Info("Report written")
	return nil
}

func encodeReport(w io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// writeReport encodes rep into wc and closes it, reporting a failed close.
func writeReport(wc io.WriteCloser, rep *report.Report) error {
	if err := encodeReport(wc, rep); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
