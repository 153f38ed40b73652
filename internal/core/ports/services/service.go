package services

// ServiceContainer holds instances of all the application services.
// It is the entry point used by the handlers.
type ServiceContainer struct {
	Session       SessionSvc
	Accounts      AccountStoreSvc
	Transactions  TransactionAggregatorSvc
	Notifications NotificationSink
	Console       ConsoleSvcFacade
}
