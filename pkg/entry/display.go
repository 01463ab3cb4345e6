package entry

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// PrettyPrintEntries renders entries as a compact table.
func PrettyPrintEntries(entries ...*Entry) {
	if len(entries) == 0 {
		return
	}

	tbl := uitable.New()
	tbl.Separator = " "

	for _, e := range entries {
		m := " "
		if e.HasMood() {
			m = e.Mood.Symbol()
		}
		tbl.AddRow(e.Created.Local().Format("Jan 02 15:04"), m, e.DisplayTitle(), e.Preview(60))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
