package utils

import (
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount as dollars with two decimals and thousands separators.
// Example: 1234.5 returns "$1,234.50"
func FormatMoney(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + "$" + moneyPrinter.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// FormatSignedAmount renders a transaction amount with the sign implied by its type.
// Example: a DEPOSIT of 150 returns "+$150.00", a TRANSFER of 150 returns "-$150.00"
func FormatSignedAmount(tx domain.Transaction) string {
	return tx.TransactionType.Sign() + FormatMoney(tx.Amount.Abs())
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
