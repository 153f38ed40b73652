package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/bank_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/platform/config"
	"github.com/SscSPs/bank_console/internal/utils"
)

const anonymousDistinctID = "anonymous"

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, ledger gateways.LedgerGateway, store portsrepo.SessionStore, analytics *utils.PosthogClientWrapper, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Session first: the stores are gated by it
	container.Session = NewSessionService(ledger, store)
	container.Accounts = NewAccountStore(ledger, container.Session)
	container.Transactions = NewTransactionAggregator(ledger, container.Session)
	container.Notifications = NewNotificationService(WithNotificationTTLs(cfg.NotifySuccessTTL, cfg.NotifyErrorTTL))
	container.Console = NewConsoleService(ledger, container.Session, container.Accounts, container.Transactions, container.Notifications)

	// Forced or not, a logout invalidates every cached view
	container.Session.OnLogout(func(ctx context.Context) {
		container.Accounts.Reset()
		container.Transactions.Reset()
	})

	container.Accounts.OnChange(func(accounts []domain.Account) {
		labels := make([]string, len(accounts))
		for i, a := range accounts {
			labels[i] = a.Label()
		}
		logger.Debug("Account options updated", slog.Any("accounts", labels))
	})

	if analytics.IsInitialized() {
		session := container.Session
		container.Notifications.OnPush(func(n domain.Notification) {
			distinctID := anonymousDistinctID
			if current := session.Current(); current != nil {
				distinctID = current.Username
			}
			analytics.Enqueue(distinctID, "console_notification", map[string]any{
				"title":    n.Title,
				"severity": string(n.Severity),
			})
		})
	}

	return container
}
