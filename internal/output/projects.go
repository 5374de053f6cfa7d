package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rpgo/carbonsim/internal/domain"
)

// WriteProjectList prints the visible projects of a period as an aligned table.
// Hidden projects are skipped unless showHidden is set.
func WriteProjectList(w io.Writer, projects []domain.ProjectDescriptor, showHidden bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOST\tREBATE\tFINANCING\tSTATUS")
	for _, p := range projects {
		if !p.Visible && !showHidden {
			continue
		}
		fin := make([]string, len(p.FinancingOptions))
		for i, f := range p.FinancingOptions {
			fin[i] = string(f)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, FormatCurrency(p.Cost), FormatCurrency(p.Rebate), strings.Join(fin, ","), projectStatus(p))
	}
	return tw.Flush()
}

func projectStatus(p domain.ProjectDescriptor) string {
	switch {
	case p.Selected:
		return "selected"
	case p.Disabled:
		return p.DisabledReason
	case p.Renewable:
		return "available (renews yearly)"
	}
	return "available"
}
