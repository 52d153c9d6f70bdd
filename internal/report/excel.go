package report

import (
	"fmt"

	"bayesrt/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook exports the report as an xlsx workbook: one sheet of
// posterior summaries, one of chain diagnostics, one of overlay densities.
func WriteWorkbook(r *ChapterReport, path string) error {
	f := excelize.NewFile()

	if err := writeSummarySheet(f, r); err != nil {
		return errors.ReportError(path, err)
	}
	if !r.NoData {
		if err := writeChainSheet(f, r); err != nil {
			return errors.ReportError(path, err)
		}
		if err := writeOverlaySheet(f, r); err != nil {
			return errors.ReportError(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ReportError(path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r *ChapterReport) error {
	sheet := "Sheet1"
	if err := f.SetSheetName(sheet, "Posterior"); err != nil {
		return err
	}
	sheet = "Posterior"

	headers := []interface{}{"parameter", "coefficient", "mean", "median", "sd", "p_positive"}
	if len(r.Coefficients) > 0 {
		for _, iv := range r.Coefficients[0].Summary.Intervals {
			headers = append(headers,
				fmt.Sprintf("ci%.0f_lower", iv.Mass*100),
				fmt.Sprintf("ci%.0f_upper", iv.Mass*100))
		}
	}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	if r.NoData {
		return writeRow(f, sheet, 2, []interface{}{"(no data)"})
	}

	for i, row := range r.Coefficients {
		values := []interface{}{
			string(row.Param), string(row.Role),
			row.Summary.Mean, row.Summary.Median, row.Summary.StdDev, row.Summary.ProbPositive,
		}
		for _, iv := range row.Summary.Intervals {
			values = append(values, iv.Lower, iv.Upper)
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeChainSheet(f *excelize.File, r *ChapterReport) error {
	sheet := "Chains"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1, []interface{}{"chain", "seed", "proposals", "accepted", "acceptance_rate", "infeasible"}); err != nil {
		return err
	}
	for i, cs := range r.Chains {
		row := []interface{}{cs.Chain, cs.Seed, cs.Proposals, cs.Accepted, cs.AcceptanceRate, cs.Infeasible}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeOverlaySheet(f *excelize.File, r *ChapterReport) error {
	sheet := "Overlay"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1, []interface{}{"condition", "rt_bin", "empirical_density", "predicted_density"}); err != nil {
		return err
	}

	line := 2
	for _, o := range r.Overlays {
		for i, b := range o.Empirical.Bins {
			pred := 0.0
			if i < len(o.Predicted.Bins) {
				pred = o.Predicted.Bins[i].Density
			}
			if err := writeRow(f, sheet, line, []interface{}{o.Condition, b.Center, b.Density, pred}); err != nil {
				return err
			}
			line++
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
