package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bayesrt/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown produces the chapter report as markdown text
func RenderMarkdown(r *ChapterReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Title)
	fmt.Fprintf(&sb, "Model family: `%s`  \n", r.Family)
	fmt.Fprintf(&sb, "Data: %s (%d of %d rows kept)  \n", r.Source, r.TrialCount, r.RowsRead)
	fmt.Fprintf(&sb, "Generated: %s\n\n", r.GeneratedAt)

	if len(r.Rejections) > 0 {
		sb.WriteString("## Excluded trials\n\n")
		for reason, n := range r.Rejections {
			fmt.Fprintf(&sb, "- %s: %d\n", reason, n)
		}
		sb.WriteString("\n")
	}

	if r.NoData {
		sb.WriteString("## Posterior\n\n**No data** — the posterior sample set is empty; no intervals can be reported.\n")
		return sb.String()
	}

	sb.WriteString("## Posterior summaries\n\n")
	sb.WriteString("| Parameter | Coefficient | Mean | Median | SD |")
	if len(r.Coefficients) > 0 {
		for _, iv := range r.Coefficients[0].Summary.Intervals {
			fmt.Fprintf(&sb, " %.0f%% CI |", iv.Mass*100)
		}
	}
	sb.WriteString(" P(>0) |\n")
	sb.WriteString("|---|---|---|---|---|")
	if len(r.Coefficients) > 0 {
		for range r.Coefficients[0].Summary.Intervals {
			sb.WriteString("---|")
		}
	}
	sb.WriteString("---|\n")

	for _, row := range r.Coefficients {
		if row.Summary.NoData() {
			fmt.Fprintf(&sb, "| %s | %s | no data | | |\n", row.Param, row.Role)
			continue
		}
		fmt.Fprintf(&sb, "| %s | %s | %.4f | %.4f | %.4f |",
			row.Param, row.Role, row.Summary.Mean, row.Summary.Median, row.Summary.StdDev)
		for _, iv := range row.Summary.Intervals {
			fmt.Fprintf(&sb, " [%.4f, %.4f] |", iv.Lower, iv.Upper)
		}
		fmt.Fprintf(&sb, " %.3f |\n", row.Summary.ProbPositive)
	}
	sb.WriteString("\n")

	if len(r.Chains) > 0 {
		sb.WriteString("## Chains\n\n| Chain | Proposals | Accepted | Rate | Infeasible |\n|---|---|---|---|---|\n")
		for _, cs := range r.Chains {
			fmt.Fprintf(&sb, "| %d | %d | %d | %.3f | %d |\n",
				cs.Chain, cs.Proposals, cs.Accepted, cs.AcceptanceRate, cs.Infeasible)
		}
		sb.WriteString("\n")
	}

	if len(r.Overlays) > 0 {
		sb.WriteString("## Posterior-predictive check\n\n")
		for _, o := range r.Overlays {
			fmt.Fprintf(&sb, "```\n%s```\n\n", o.RenderASCII(60))
		}
	}

	return sb.String()
}

// RenderHTML converts the markdown report to a standalone HTML fragment
func RenderHTML(r *ChapterReport) []byte {
	md := []byte(RenderMarkdown(r))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	return markdown.ToHTML(md, p, renderer)
}

// WriteArtifacts writes the markdown and HTML report files into outDir
func WriteArtifacts(r *ChapterReport, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.ReportError(outDir, err)
	}

	mdPath := filepath.Join(outDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(RenderMarkdown(r)), 0o644); err != nil {
		return errors.ReportError(mdPath, err)
	}

	htmlPath := filepath.Join(outDir, "report.html")
	if err := os.WriteFile(htmlPath, RenderHTML(r), 0o644); err != nil {
		return errors.ReportError(htmlPath, err)
	}

	return nil
}
