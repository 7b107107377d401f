package cmd

import (
	"fmt"
	"io"

	"github.com/jjtimmons/offtarget/internal/offtarget"
	"github.com/olekukonko/tablewriter"
)

// printHits writes the off-target matches as a table.
func printHits(w io.Writer, hits []offtarget.Hit) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Amplicon", "100% Homolog"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	amplicons := make(map[string]bool)
	for _, h := range hits {
		table.Append([]string{h.Amplicon, h.Homolog})
		amplicons[h.Amplicon] = true
	}

	table.SetFooter([]string{
		fmt.Sprintf("Amplicons %d", len(amplicons)),
		fmt.Sprintf("Matches %d", len(hits)),
	})
	table.Render()
}
