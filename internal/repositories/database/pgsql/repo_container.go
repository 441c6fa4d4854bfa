package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		MembershipRepo:   newPgxMembershipRepository(dbPool),
		CatalogRepo:      newPgxCatalogRepository(dbPool),
		TrainingRepo:     newPgxTrainingRepository(dbPool),
		EnrollmentRepo:   newPgxEnrollmentRepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
		ProgressRepo:     newPgxProgressRepository(dbPool),
	}
}
