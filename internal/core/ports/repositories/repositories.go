package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	MembershipRepo   MembershipRepositoryWithTx
	CatalogRepo      CatalogGraphFacade
	TrainingRepo     TrainingRepositoryFacade
	EnrollmentRepo   EnrollmentRepositoryWithTx
	SubscriptionRepo SubscriptionRepositoryFacade
	ProgressRepo     ProgressRepositoryWithTx
}
