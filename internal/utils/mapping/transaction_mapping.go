package mapping

import (
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/dto"
)

// ToDomainTransaction converts a ledger transaction payload to the canonical
// domain shape. sourceAccountNumber/destinationAccountNumber win when present;
// fromAccountNumber/toAccountNumber are only used to fill gaps.
func ToDomainTransaction(r dto.TransactionResponse) domain.Transaction {
	source := r.SourceAccountNumber
	if source == "" {
		source = r.FromAccountNumber
	}
	destination := r.DestinationAccountNumber
	if destination == "" {
		destination = r.ToAccountNumber
	}
	return domain.Transaction{
		ID:                       r.ID,
		TransactionType:          domain.TransactionType(r.TransactionType),
		Amount:                   r.Amount,
		TransactionDate:          r.TransactionDate.Time,
		Description:              r.Description,
		SourceAccountID:          r.SourceAccountID,
		SourceAccountNumber:      source,
		DestinationAccountID:     r.DestinationAccountID,
		DestinationAccountNumber: destination,
	}
}

// ToDomainTransactions converts a slice of ledger transaction payloads.
func ToDomainTransactions(rs []dto.TransactionResponse) []domain.Transaction {
	txs := make([]domain.Transaction, len(rs))
	for i, r := range rs {
		txs[i] = ToDomainTransaction(r)
	}
	return txs
}
