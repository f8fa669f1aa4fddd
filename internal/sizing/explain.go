package sizing

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"solar-sizer/internal/model"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a whole-unit amount with thousands separators, e.g. "₦225,000".
func FormatAmount(symbol string, amount float64) string {
	return symbol + amountPrinter.Sprintf("%d", int64(RoundCurrency(amount)))
}

func explain(m model.MarketParams, r model.SizingResult, dailyKWh, actualKW, monthlySavings float64) string {
	c := r.Components
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your monthly electricity bill of %s, your business consumes approximately %.1f kWh per day. ",
		FormatAmount(m.CurrencySymbol, r.Input.MonthlyBill), dailyKWh)
	fmt.Fprintf(&b, "To meet this demand reliably using solar energy in %s's climate (%s peak sun hours), you need a %.1fkW solar system. ",
		m.Country, num(m.PeakSunHours), actualKW)
	fmt.Fprintf(&b, "This will be powered by %d solar panels (%sW each), a %skVA inverter, and %d batteries providing %s hours of backup power. ",
		c.Panels.Quantity, num(c.Panels.WattagePerPanel), num(c.Inverter.SizeKVA), c.Batteries.Quantity, num(c.Batteries.BackupHours))
	fmt.Fprintf(&b, "This system will reduce your electricity costs by approximately %s%%, saving you %s per month. ",
		num(m.SavingsRate*100), FormatAmount(m.CurrencySymbol, monthlySavings))
	fmt.Fprintf(&b, "The system will pay for itself in %d months (%.1f years).",
		r.Financials.PaybackPeriodMonths, r.Financials.PaybackPeriodYears)
	return b.String()
}

func num(x float64) string {
	return strconv.FormatFloat(Round(x, 2), 'f', -1, 64)
}
