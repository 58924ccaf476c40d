package output

import (
	"bytes"
	"fmt"

	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
)

// ConsoleFormatter renders a side-by-side quote comparison for terminal
// display.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.QuoteReport) ([]byte, error) {
	var buf bytes.Buffer
	if report.Program != nil {
		fmt.Fprintf(&buf, "QUOTE: %s %s %s\n", report.Program.Brand, report.Program.Model, report.Program.Trim)
	} else {
		fmt.Fprintln(&buf, "QUOTE")
	}
	fmt.Fprintln(&buf, "================================")

	if report.Finance != nil {
		c.writeFinance(&buf, report.Finance)
	}
	if report.Lease != nil {
		c.writeLease(&buf, report.Lease)
	}
	if report.Finance == nil && report.Lease == nil {
		fmt.Fprintln(&buf, "No result: no program selected or price not set.")
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeFinance(buf *bytes.Buffer, r *domain.FinanceResult) {
	fmt.Fprintf(buf, "\nFINANCING (%d months, %s)\n", r.Term, r.Frequency)
	c.writeFinanceOption(buf, "Option 1 (rebate + standard rate)", r.Option1)
	c.writeFinanceOption(buf, "Option 2 (no rebate + reduced rate)", r.Option2)
	if r.Best != domain.BestOptionNone {
		fmt.Fprintf(buf, "  Best: %s (savings %s)\n", r.Best, FormatCurrency(r.Savings))
	}
}

func (c ConsoleFormatter) writeFinanceOption(buf *bytes.Buffer, label string, opt *domain.FinanceOption) {
	if opt == nil {
		fmt.Fprintf(buf, "  %s: not available\n", label)
		return
	}
	fmt.Fprintf(buf, "  %s: rate=%s principal=%s monthly=%s biweekly=%s weekly=%s total=%s\n",
		label,
		FormatRate(opt.Rate),
		FormatCurrency(opt.Principal),
		FormatCurrency(opt.MonthlyPayment),
		FormatCurrency(opt.BiweeklyPayment),
		FormatCurrency(opt.WeeklyPayment),
		FormatCurrency(opt.TotalCost),
	)
}

func (c ConsoleFormatter) writeLease(buf *bytes.Buffer, r *domain.LeaseResult) {
	fmt.Fprintf(buf, "\nLEASE (%d months, %d km/yr)\n", r.Term, r.KMPerYear)
	c.writeLeaseOption(buf, "Standard (with lease cash)", r.Standard)
	c.writeLeaseOption(buf, "Alternative (no lease cash)", r.Alternative)
	if r.Best != "" {
		fmt.Fprintf(buf, "  Best variant: %s (savings %s)\n", r.Best, FormatCurrency(r.Savings))
	}
	if r.BestCell != nil {
		fmt.Fprintf(buf, "  Recommended configuration: %d months / %d km/yr / %s at %s per month\n",
			r.BestCell.Term, r.BestCell.KMPerYear, r.BestCell.Variant,
			FormatCurrency(r.BestCell.Option.MonthlyPayment))
	}
}

func (c ConsoleFormatter) writeLeaseOption(buf *bytes.Buffer, label string, opt *domain.LeaseOption) {
	if opt == nil {
		fmt.Fprintf(buf, "  %s: not available\n", label)
		return
	}
	fmt.Fprintf(buf, "  %s: rate=%s residual=%s (%s%%) netcap=%s\n",
		label,
		FormatRate(opt.Rate),
		FormatCurrency(opt.ResidualValue),
		opt.ResidualPercent.StringFixed(2),
		FormatCurrency(opt.NetCapCost),
	)
	fmt.Fprintf(buf, "    before tax=%s TPS=%s TVQ=%s trade credit=%s",
		FormatCurrency(opt.PaymentBeforeTax),
		FormatCurrency(opt.TPS),
		FormatCurrency(opt.TVQ),
		FormatCurrency(opt.TradeCredit),
	)
	if opt.LostCredit.IsPositive() {
		fmt.Fprintf(buf, " (lost %s)", FormatCurrency(opt.LostCredit))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "    monthly=%s biweekly=%s weekly=%s total=%s borrowing cost=%s\n",
		FormatCurrency(opt.MonthlyPayment),
		FormatCurrency(opt.BiweeklyPayment),
		FormatCurrency(opt.WeeklyPayment),
		FormatCurrency(opt.TotalCost),
		FormatCurrency(opt.CostOfBorrowing),
	)
}
