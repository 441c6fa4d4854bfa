package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/core/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Test Suite ---

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockSubscriptionRepo *MockSubscriptionRepository
	mockAccountRepo      *MockAccountRepository
	mockOrganizationRepo *MockOrganizationRepository
	mockMembershipRepo   *MockMembershipRepository
	mockUserRepo         *MockUserRepository
	service              portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockSubscriptionRepo = new(MockSubscriptionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOrganizationRepo = new(MockOrganizationRepository)
	suite.mockMembershipRepo = new(MockMembershipRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewSubscriptionService(
		suite.mockSubscriptionRepo,
		suite.mockAccountRepo,
		suite.mockOrganizationRepo,
		suite.mockMembershipRepo,
		suite.mockUserRepo,
	)
}

func individualPlan(durationDays int) *domain.Plan {
	return &domain.Plan{PlanID: uuid.NewString(), Name: "Solo", Type: domain.PlanIndividual, DurationDays: durationDays}
}

func enterprisePlan(durationDays int) *domain.Plan {
	return &domain.Plan{PlanID: uuid.NewString(), Name: "Team", Type: domain.PlanEnterprise, DurationDays: durationDays}
}

// --- PurchaseSubscription Tests ---

func (suite *SubscriptionServiceTestSuite) TestPurchaseSubscription_IndividualCreatesPersonalAccount() {
	ctx := context.Background()
	userID := uuid.NewString()
	plan := individualPlan(30)
	user := &domain.User{UserID: userID, GlobalRole: domain.RoleStandard} // No personal account yet

	suite.mockSubscriptionRepo.On("FindPlanByID", ctx, plan.PlanID).Return(plan, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Type == domain.AccountPersonal && a.CreatedBy == userID
	})).Return(nil).Once()
	suite.mockUserRepo.On("SetPersonalAccountID", ctx, userID, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockSubscriptionRepo.On("FindActiveByAccountID", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubscriptionRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.PlanID == plan.PlanID && s.Status == domain.SubscriptionActive &&
			s.EndDate.Equal(s.StartDate.AddDate(0, 0, plan.DurationDays))
	})).Return(nil).Once()

	subscription, err := suite.service.PurchaseSubscription(ctx, userID, plan.PlanID, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(subscription)
	suite.Equal(domain.SubscriptionActive, subscription.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSubscriptionRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestPurchaseSubscription_IndividualReusesPersonalAccount() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()
	plan := individualPlan(365)
	user := &domain.User{UserID: userID, PersonalAccountID: &accountID}

	suite.mockSubscriptionRepo.On("FindPlanByID", ctx, plan.PlanID).Return(plan, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockSubscriptionRepo.On("FindActiveByAccountID", ctx, accountID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubscriptionRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.AccountID == accountID
	})).Return(nil).Once()

	subscription, err := suite.service.PurchaseSubscription(ctx, userID, plan.PlanID, nil)

	suite.Require().NoError(err)
	suite.Equal(accountID, subscription.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestPurchaseSubscription_IndividualWithOrgRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	orgID := uuid.NewString()
	plan := individualPlan(30)

	suite.mockSubscriptionRepo.On("FindPlanByID", ctx, plan.PlanID).Return(plan, nil).Once()

	subscription, err := suite.service.PurchaseSubscription(ctx, userID, plan.PlanID, &orgID)

	suite.Require().Error(err)
	suite.Nil(subscription)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SubscriptionServiceTestSuite) TestPurchaseSubscription_EnterpriseRequiresOrgAdmin() {
	ctx := context.Background()
	userID := uuid.NewString()
	orgID := uuid.NewString()
	plan := enterprisePlan(30)
	member := &domain.Membership{MembershipID: uuid.NewString(), UserID: userID, OrganizationID: orgID, Role: domain.RoleOrgMember}

	suite.mockSubscriptionRepo.On("FindPlanByID", ctx, plan.PlanID).Return(plan, nil).Once()
	suite.mockOrganizationRepo.On("FindOrganizationByID", ctx, orgID).Return(&domain.Organization{OrganizationID: orgID, AccountID: uuid.NewString()}, nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, userID, orgID).Return(member, nil).Once()

	subscription, err := suite.service.PurchaseSubscription(ctx, userID, plan.PlanID, &orgID)

	suite.Require().Error(err)
	suite.Nil(subscription)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSubscriptionRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestPurchaseSubscription_EnterpriseBillsOrgAccount() {
	ctx := context.Background()
	userID := uuid.NewString()
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	plan := enterprisePlan(90)
	admin := &domain.Membership{MembershipID: uuid.NewString(), UserID: userID, OrganizationID: orgID, Role: domain.RoleOrgAdmin}

	suite.mockSubscriptionRepo.On("FindPlanByID", ctx, plan.PlanID).Return(plan, nil).Once()
	suite.mockOrganizationRepo.On("FindOrganizationByID", ctx, orgID).Return(&domain.Organization{OrganizationID: orgID, AccountID: accountID}, nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, userID, orgID).Return(admin, nil).Once()
	suite.mockSubscriptionRepo.On("FindActiveByAccountID", ctx, accountID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubscriptionRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.AccountID == accountID
	})).Return(nil).Once()

	subscription, err := suite.service.PurchaseSubscription(ctx, userID, plan.PlanID, &orgID)

	suite.Require().NoError(err)
	suite.Equal(accountID, subscription.AccountID)
	suite.mockSubscriptionRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestPurchaseSubscription_ConflictWhenActiveExists() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()
	plan := individualPlan(30)
	user := &domain.User{UserID: userID, PersonalAccountID: &accountID}
	existing := &domain.Subscription{SubscriptionID: uuid.NewString(), AccountID: accountID, Status: domain.SubscriptionActive}

	suite.mockSubscriptionRepo.On("FindPlanByID", ctx, plan.PlanID).Return(plan, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockSubscriptionRepo.On("FindActiveByAccountID", ctx, accountID, mock.AnythingOfType("time.Time")).Return(existing, nil).Once()

	subscription, err := suite.service.PurchaseSubscription(ctx, userID, plan.PlanID, nil)

	suite.Require().Error(err)
	suite.Nil(subscription)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockSubscriptionRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

// --- CancelSubscription Tests ---

func (suite *SubscriptionServiceTestSuite) TestCancelSubscription_OwnerCancels() {
	ctx := context.Background()
	actorID := uuid.NewString()
	accountID := uuid.NewString()
	actor := &domain.User{UserID: actorID, PersonalAccountID: &accountID}
	sub := &domain.Subscription{SubscriptionID: uuid.NewString(), AccountID: accountID, Status: domain.SubscriptionActive}

	suite.mockSubscriptionRepo.On("FindSubscriptionByID", ctx, sub.SubscriptionID).Return(sub, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorID).Return(actor, nil).Once()
	suite.mockSubscriptionRepo.On("UpdateSubscriptionStatus", ctx, sub.SubscriptionID, domain.SubscriptionCanceled, actorID).Return(nil).Once()

	err := suite.service.CancelSubscription(ctx, sub.SubscriptionID, actorID)

	suite.Require().NoError(err)
	suite.mockSubscriptionRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCancelSubscription_OnlyActiveCancelable() {
	ctx := context.Background()
	actorID := uuid.NewString()
	sub := &domain.Subscription{SubscriptionID: uuid.NewString(), AccountID: uuid.NewString(), Status: domain.SubscriptionExpired}

	suite.mockSubscriptionRepo.On("FindSubscriptionByID", ctx, sub.SubscriptionID).Return(sub, nil).Once()

	err := suite.service.CancelSubscription(ctx, sub.SubscriptionID, actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockSubscriptionRepo.AssertNotCalled(suite.T(), "UpdateSubscriptionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestCancelSubscription_StrangerForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	actor := &domain.User{UserID: actorID, GlobalRole: domain.RoleStandard}
	sub := &domain.Subscription{SubscriptionID: uuid.NewString(), AccountID: uuid.NewString(), Status: domain.SubscriptionActive}

	suite.mockSubscriptionRepo.On("FindSubscriptionByID", ctx, sub.SubscriptionID).Return(sub, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorID).Return(actor, nil).Once()
	suite.mockMembershipRepo.On("ListMembershipsByUserID", ctx, actorID).Return([]domain.Membership{}, nil).Once()

	err := suite.service.CancelSubscription(ctx, sub.SubscriptionID, actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- CreatePlan Tests ---

func (suite *SubscriptionServiceTestSuite) TestCreatePlan_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	admin := &domain.User{UserID: actorID, GlobalRole: domain.RoleSystemAdmin}

	suite.mockUserRepo.On("FindUserByID", ctx, actorID).Return(admin, nil).Once()
	suite.mockSubscriptionRepo.On("SavePlan", ctx, mock.MatchedBy(func(p domain.Plan) bool {
		return p.Name == "Pro" && p.Type == domain.PlanIndividual && p.DurationDays == 30 && p.Price.String() == "49.9"
	})).Return(nil).Once()

	plan, err := suite.service.CreatePlan(ctx, "Pro", domain.PlanIndividual, "49.90", 30, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(plan)
	suite.NotEmpty(plan.PlanID)
	suite.mockSubscriptionRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCreatePlan_NonAdminForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	user := &domain.User{UserID: actorID, GlobalRole: domain.RoleStandard}

	suite.mockUserRepo.On("FindUserByID", ctx, actorID).Return(user, nil).Once()

	plan, err := suite.service.CreatePlan(ctx, "Pro", domain.PlanIndividual, "49.90", 30, actorID)

	suite.Require().Error(err)
	suite.Nil(plan)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *SubscriptionServiceTestSuite) TestCreatePlan_InvalidPrice() {
	ctx := context.Background()
	actorID := uuid.NewString()
	admin := &domain.User{UserID: actorID, GlobalRole: domain.RoleSystemAdmin}

	suite.mockUserRepo.On("FindUserByID", ctx, actorID).Return(admin, nil).Twice()

	_, err := suite.service.CreatePlan(ctx, "Pro", domain.PlanIndividual, "not-a-number", 30, actorID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreatePlan(ctx, "Pro", domain.PlanIndividual, "10.00", 0, actorID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockSubscriptionRepo.AssertNotCalled(suite.T(), "SavePlan", mock.Anything, mock.Anything)
}

// --- ExpireOverdue Tests ---

func (suite *SubscriptionServiceTestSuite) TestExpireOverdue_ReturnsAffectedCount() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.mockSubscriptionRepo.On("ExpireOverdue", ctx, now).Return(int64(3), nil).Once()

	affected, err := suite.service.ExpireOverdue(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(int64(3), affected)
	suite.mockSubscriptionRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
