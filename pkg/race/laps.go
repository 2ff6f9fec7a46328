package race

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/golangdaddy/circuit/pkg/models"
)

// FormatLapTime renders a lap time as seconds and hundredths, e.g. "12.34s".
func FormatLapTime(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d.%02ds", ms/1000, (ms%1000)/10)
}

// WriteSummary prints the session's laps as a table.
func WriteSummary(w io.Writer, laps []models.LapRecord, best *time.Duration) {
	if len(laps) == 0 {
		fmt.Fprintln(w, "No laps recorded.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Lap", "Time", "Qualifying", "Best"})
	for _, lap := range laps {
		t.AppendRow(table.Row{
			lap.Lap,
			FormatLapTime(lap.Duration),
			yesNo(lap.Qualifying),
			yesNo(lap.PersonalBest),
		})
	}
	if best != nil {
		t.AppendSeparator()
		t.AppendFooter(table.Row{"", FormatLapTime(*best), "", "best lap"})
	}
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
