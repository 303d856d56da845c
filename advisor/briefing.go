package advisor

import (
	"fmt"
	"strings"

	"github.com/mgalet/expensefox"
)

// Briefing renders the ledger state as the plain-text context handed to the
// model: accounts, the month's totals, budgets, and the recent transactions.
func Briefing(l *expensefox.Ledger, month expensefox.Month) string {
	currency := l.Currency()
	var b strings.Builder

	fmt.Fprintf(&b, "Currency: %s\n", currency.Code)
	fmt.Fprintf(&b, "Month: %s\n\n", month)

	fmt.Fprintln(&b, "Accounts:")
	for _, a := range l.Accounts() {
		fmt.Fprintf(&b, "- %s: %s\n", a.Name, currency.Format(a.Balance))
	}
	fmt.Fprintf(&b, "Total balance: %s\n\n", currency.Format(l.TotalBalance()))

	fmt.Fprintf(&b, "Income this month: %s\n", currency.Format(l.MonthlyIncome(month)))
	fmt.Fprintf(&b, "Expenses this month: %s\n\n", currency.Format(l.MonthlyExpenses(month)))

	budgets := l.Budgets()
	if len(budgets) > 0 {
		fmt.Fprintln(&b, "Budgets:")
		for _, budget := range budgets {
			if budget.Month != month {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s spent of %s\n",
				l.CategoryName(budget.Category),
				currency.Format(budget.Spent),
				currency.Format(budget.Limit))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "Recent transactions:")
	n := 0
	for tx := range l.Transactions(expensefox.ByMonth(month)) {
		if n >= 20 {
			break
		}
		fmt.Fprintf(&b, "- %s %s %s on %s (%s)\n",
			tx.Date.Format("2006-01-02"), tx.Type,
			currency.Format(tx.Amount),
			l.CategoryName(tx.Category),
			l.AccountName(tx.AccountID))
		n++
	}
	if n == 0 {
		fmt.Fprintln(&b, "- none")
	}
	return b.String()
}
