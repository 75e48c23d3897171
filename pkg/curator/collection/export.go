package collection

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

type Exporter struct {
	// Progress receives a progress bar while rows are written. Nil disables it.
	Progress io.Writer
}

func (e *Exporter) WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	bar := e.progressBar(len(rows))
	record := make([]string, len(Columns))
	for _, row := range rows {
		for i, column := range Columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func (e *Exporter) progressBar(total int) *progressbar.ProgressBar {
	if e.Progress == nil {
		return progressbar.DefaultSilent(int64(total), "writing csv")
	}
	return progressbar.NewOptions64(int64(total),
		progressbar.OptionSetWriter(e.Progress),
		progressbar.OptionSetDescription("writing csv"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(e.Progress) }),
	)
}
