package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/core/services"
)

type MembershipServiceTestSuite struct {
	suite.Suite
	mockMembershipRepo   *MockMembershipRepository
	mockOrganizationRepo *MockOrganizationRepository
	mockUserRepo         *MockUserRepository
	service              portssvc.MembershipSvcFacade
}

func (suite *MembershipServiceTestSuite) SetupTest() {
	suite.mockMembershipRepo = new(MockMembershipRepository)
	suite.mockOrganizationRepo = new(MockOrganizationRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewMembershipService(
		suite.mockMembershipRepo,
		suite.mockOrganizationRepo,
		suite.mockUserRepo,
	)
}

func (suite *MembershipServiceTestSuite) adminMembership(userID, orgID string) *domain.Membership {
	return &domain.Membership{
		MembershipID:   uuid.NewString(),
		UserID:         userID,
		OrganizationID: orgID,
		Role:           domain.RoleOrgAdmin,
	}
}

// --- AddMember Tests ---

func (suite *MembershipServiceTestSuite) TestAddMember_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockOrganizationRepo.On("FindOrganizationByID", ctx, orgID).Return(&domain.Organization{OrganizationID: orgID}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()
	suite.mockMembershipRepo.On("SaveMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == targetID && m.OrganizationID == orgID && m.Role == domain.RoleOrgMember && m.AddedBy == actorID
	})).Return(nil).Once()

	membership, err := suite.service.AddMember(ctx, actorID, orgID, targetID, domain.RoleOrgMember)

	suite.Require().NoError(err)
	suite.Require().NotNil(membership)
	suite.NotEmpty(membership.MembershipID)
	suite.mockMembershipRepo.AssertExpectations(suite.T())
}

func (suite *MembershipServiceTestSuite) TestAddMember_NonAdminForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	member := &domain.Membership{MembershipID: uuid.NewString(), UserID: actorID, OrganizationID: orgID, Role: domain.RoleOrgMember}

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(member, nil).Once()

	membership, err := suite.service.AddMember(ctx, actorID, orgID, uuid.NewString(), domain.RoleOrgMember)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "SaveMembership", mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestAddMember_NonMemberForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(nil, apperrors.ErrNotFound).Once()

	membership, err := suite.service.AddMember(ctx, actorID, orgID, uuid.NewString(), domain.RoleOrgAdmin)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- RemoveMember Tests ---

func (suite *MembershipServiceTestSuite) TestRemoveMember_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	target := suite.adminMembership(uuid.NewString(), orgID)

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, target.MembershipID).Return(target, nil).Once()
	suite.mockMembershipRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockMembershipRepo.On("CountAdminsForUpdate", ctx, mock.Anything, orgID).Return(2, nil).Once()
	suite.mockMembershipRepo.On("DeleteMembershipInTx", ctx, mock.Anything, target.MembershipID).Return(nil).Once()
	suite.mockMembershipRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockMembershipRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.RemoveMember(ctx, actorID, orgID, target.MembershipID)

	suite.Require().NoError(err)
	suite.mockMembershipRepo.AssertExpectations(suite.T())
}

func (suite *MembershipServiceTestSuite) TestRemoveMember_LastAdminBlocked() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	target := suite.adminMembership(uuid.NewString(), orgID)

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, target.MembershipID).Return(target, nil).Once()
	suite.mockMembershipRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockMembershipRepo.On("CountAdminsForUpdate", ctx, mock.Anything, orgID).Return(1, nil).Once()
	suite.mockMembershipRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.RemoveMember(ctx, actorID, orgID, target.MembershipID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLastAdmin)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "DeleteMembershipInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestRemoveMember_SelfRemovalAsLastAdminBlocked() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	// The actor's own admin membership is the removal target.
	own := suite.adminMembership(actorID, orgID)

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(own, nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, own.MembershipID).Return(own, nil).Once()
	suite.mockMembershipRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockMembershipRepo.On("CountAdminsForUpdate", ctx, mock.Anything, orgID).Return(1, nil).Once()
	suite.mockMembershipRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.RemoveMember(ctx, actorID, orgID, own.MembershipID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLastAdmin)
}

func (suite *MembershipServiceTestSuite) TestRemoveMember_PlainMemberSkipsAdminCount() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	target := &domain.Membership{MembershipID: uuid.NewString(), UserID: uuid.NewString(), OrganizationID: orgID, Role: domain.RoleOrgMember}

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, target.MembershipID).Return(target, nil).Once()
	suite.mockMembershipRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockMembershipRepo.On("DeleteMembershipInTx", ctx, mock.Anything, target.MembershipID).Return(nil).Once()
	suite.mockMembershipRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockMembershipRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.RemoveMember(ctx, actorID, orgID, target.MembershipID)

	suite.Require().NoError(err)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "CountAdminsForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestRemoveMember_OrganizationMismatch() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	otherOrgID := uuid.NewString()
	foreign := suite.adminMembership(uuid.NewString(), otherOrgID)

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, foreign.MembershipID).Return(foreign, nil).Once()

	err := suite.service.RemoveMember(ctx, actorID, orgID, foreign.MembershipID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOrganizationMismatch)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- UpdateMemberRole Tests ---

func (suite *MembershipServiceTestSuite) TestUpdateMemberRole_DemoteLastAdminBlocked() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	target := suite.adminMembership(uuid.NewString(), orgID)

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, target.MembershipID).Return(target, nil).Once()
	suite.mockMembershipRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockMembershipRepo.On("CountAdminsForUpdate", ctx, mock.Anything, orgID).Return(1, nil).Once()
	suite.mockMembershipRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	membership, err := suite.service.UpdateMemberRole(ctx, actorID, orgID, target.MembershipID, domain.RoleOrgMember)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrLastAdmin)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "UpdateMembershipRoleInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestUpdateMemberRole_PromoteSkipsAdminCount() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	target := &domain.Membership{MembershipID: uuid.NewString(), UserID: uuid.NewString(), OrganizationID: orgID, Role: domain.RoleOrgMember}

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, target.MembershipID).Return(target, nil).Once()
	suite.mockMembershipRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockMembershipRepo.On("UpdateMembershipRoleInTx", ctx, mock.Anything, target.MembershipID, domain.RoleOrgAdmin).Return(nil).Once()
	suite.mockMembershipRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockMembershipRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	membership, err := suite.service.UpdateMemberRole(ctx, actorID, orgID, target.MembershipID, domain.RoleOrgAdmin)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleOrgAdmin, membership.Role)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "CountAdminsForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestUpdateMemberRole_SameRoleNoop() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	target := suite.adminMembership(uuid.NewString(), orgID)

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(suite.adminMembership(actorID, orgID), nil).Once()
	suite.mockMembershipRepo.On("FindMembershipByID", ctx, target.MembershipID).Return(target, nil).Once()

	membership, err := suite.service.UpdateMemberRole(ctx, actorID, orgID, target.MembershipID, domain.RoleOrgAdmin)

	suite.Require().NoError(err)
	suite.Equal(target, membership)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- ListMembers Tests ---

func (suite *MembershipServiceTestSuite) TestListMembers_MemberAllowed() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()
	member := &domain.Membership{MembershipID: uuid.NewString(), UserID: actorID, OrganizationID: orgID, Role: domain.RoleOrgMember}
	expected := []domain.Membership{*member}

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(member, nil).Once()
	suite.mockMembershipRepo.On("ListMembershipsByOrganizationID", ctx, orgID).Return(expected, nil).Once()

	members, err := suite.service.ListMembers(ctx, actorID, orgID)

	suite.Require().NoError(err)
	suite.Equal(expected, members)
}

func (suite *MembershipServiceTestSuite) TestListMembers_NonMemberForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	orgID := uuid.NewString()

	suite.mockMembershipRepo.On("FindMembershipByUserAndOrg", ctx, actorID, orgID).Return(nil, apperrors.ErrNotFound).Once()

	members, err := suite.service.ListMembers(ctx, actorID, orgID)

	suite.Require().Error(err)
	suite.Nil(members)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Run Suite ---

func TestMembershipService(t *testing.T) {
	suite.Run(t, new(MembershipServiceTestSuite))
}
