package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
)

// CSVGridExporter exports the lease analysis grid (one row per
// term x mileage x variant cell), followed by finance option rows when a
// finance result is present.
type CSVGridExporter struct{}

func (c CSVGridExporter) Name() string { return "csv" }

func (c CSVGridExporter) Format(report *domain.QuoteReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Kind", "Term", "KMPerYear", "Variant", "Rate", "Principal", "Residual", "MonthlyPayment", "BiweeklyPayment", "WeeklyPayment", "TotalCost"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if report.Finance != nil {
		if err := c.writeFinanceRow(w, report.Finance, "option1", report.Finance.Option1); err != nil {
			return nil, err
		}
		if err := c.writeFinanceRow(w, report.Finance, "option2", report.Finance.Option2); err != nil {
			return nil, err
		}
	}
	if report.Lease != nil {
		for _, cell := range report.Lease.Grid {
			row := []string{
				"lease",
				strconv.Itoa(cell.Term),
				strconv.Itoa(cell.KMPerYear),
				string(cell.Variant),
				cell.Option.Rate.StringFixed(2),
				cell.Option.NetCapCost.StringFixed(2),
				cell.Option.ResidualValue.StringFixed(2),
				cell.Option.MonthlyPayment.StringFixed(2),
				cell.Option.BiweeklyPayment.StringFixed(2),
				cell.Option.WeeklyPayment.StringFixed(2),
				cell.Option.TotalCost.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func (c CSVGridExporter) writeFinanceRow(w *csv.Writer, r *domain.FinanceResult, variant string, opt *domain.FinanceOption) error {
	if opt == nil {
		return nil
	}
	return w.Write([]string{
		"finance",
		strconv.Itoa(r.Term),
		"",
		variant,
		opt.Rate.StringFixed(2),
		opt.Principal.StringFixed(2),
		"",
		opt.MonthlyPayment.StringFixed(2),
		opt.BiweeklyPayment.StringFixed(2),
		opt.WeeklyPayment.StringFixed(2),
		opt.TotalCost.StringFixed(2),
	})
}
