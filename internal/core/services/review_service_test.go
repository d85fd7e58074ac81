package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/core/services"
	"github.com/crewpay/crewpay_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	mockChecks      *MockCheckRepository
	mockRequests    *MockReviewRequestRepository
	mockUsers       *MockUserRepository
	mockBatch       *MockBatchRunner
	mockInvalidator *MockCacheInvalidator
	service         portssvc.ReviewSvcFacade
}

func (s *ReviewServiceTestSuite) SetupTest() {
	s.mockChecks = new(MockCheckRepository)
	s.mockRequests = new(MockReviewRequestRepository)
	s.mockUsers = new(MockUserRepository)
	s.mockBatch = new(MockBatchRunner)
	s.mockInvalidator = new(MockCacheInvalidator)
	s.service = services.NewReviewService(s.mockChecks, s.mockRequests, s.mockUsers, s.mockBatch, s.mockInvalidator)
}

func (s *ReviewServiceTestSuite) expectActor(u domain.User) {
	s.mockUsers.On("FindUserByID", mock.Anything, u.UserID).Return(&u, nil)
}

func weekChecks(companyID, creator string, date time.Time, n int) []domain.Check {
	checks := make([]domain.Check, 0, n)
	for i := 0; i < n; i++ {
		checks = append(checks, domain.Check{
			ID:          companyID + "-check-" + string(rune('a'+i)),
			CompanyID:   companyID,
			Date:        date,
			CreatedBy:   creator,
			CheckNumber: 100 + i,
		})
	}
	return checks
}

func (s *ReviewServiceTestSuite) TestBulkSendForReview_CreatesOneRequestPerCheckAtomically() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) // week of 2025-06-08
	checks := weekChecks("comp1", "u1", date, 7)
	s.mockChecks.On("FindUnreviewedByCompany", ctx, "comp1").Return(checks, nil).Once()

	for range checks {
		s.mockRequests.On("CreateRequestOp", mock.MatchedBy(func(r domain.ReviewRequest) bool {
			return r.CompanyID == "comp1" && r.WeekKey == "2025-06-08" && r.Status == domain.ReviewStatusPending && r.CheckID != ""
		})).Return(portsrepo.BatchOp{Kind: portsrepo.BatchCreate, Collection: portsrepo.CollectionReviewRequests}).Once()
	}
	s.mockBatch.On("Batch", ctx, mock.MatchedBy(func(ops []portsrepo.BatchOp) bool {
		return len(ops) == 7
	})).Return(nil).Once()
	s.mockInvalidator.On("InvalidateCache").Return().Once()

	result, err := s.service.BulkSendForReview(ctx, "u1", dto.BulkReviewRequest{
		CompanyID: "comp1",
		WeekKey:   "2025-06-08",
		Confirm:   true,
	})

	s.Require().NoError(err)
	s.True(result.Committed)
	s.Equal(7, result.TargetCount)
	s.Equal(7, result.Applied)
	s.mockBatch.AssertExpectations(s.T())
	s.mockRequests.AssertExpectations(s.T())
	s.mockInvalidator.AssertExpectations(s.T())
}

func (s *ReviewServiceTestSuite) TestBulkSendForReview_WithoutConfirmOnlySummarizes() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	s.mockChecks.On("FindUnreviewedByCompany", ctx, "comp1").Return(weekChecks("comp1", "u1", date, 3), nil).Once()

	result, err := s.service.BulkSendForReview(ctx, "u1", dto.BulkReviewRequest{
		CompanyID: "comp1",
		WeekKey:   "2025-06-08",
	})

	s.Require().NoError(err)
	s.False(result.Committed)
	s.Equal(3, result.TargetCount)
	s.Zero(result.Applied)
	// Nothing may be written without confirm.
	s.mockBatch.AssertNotCalled(s.T(), "Batch", mock.Anything, mock.Anything)
	s.mockRequests.AssertNotCalled(s.T(), "CreateRequest", mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) TestBulkSendForReview_EmptyScopeIsANoOpSuccess() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	s.mockChecks.On("FindUnreviewedByCompany", ctx, "comp1").Return([]domain.Check{}, nil).Once()

	result, err := s.service.BulkSendForReview(ctx, "u1", dto.BulkReviewRequest{
		CompanyID: "comp1",
		WeekKey:   "2025-06-08",
		Confirm:   true,
	})

	s.Require().NoError(err)
	s.False(result.Committed)
	s.Zero(result.TargetCount)
	s.Contains(result.Message, "nothing to do")
	s.mockBatch.AssertNotCalled(s.T(), "Batch", mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) TestBulkSendForReview_RejectedBatchCreatesNothing() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checks := weekChecks("comp1", "u1", date, 4)
	s.mockChecks.On("FindUnreviewedByCompany", ctx, "comp1").Return(checks, nil).Once()
	s.mockRequests.On("CreateRequestOp", mock.Anything).Return(portsrepo.BatchOp{Kind: portsrepo.BatchCreate}).Times(4)
	s.mockBatch.On("Batch", ctx, mock.Anything).Return(apperrors.ErrBatchWrite).Once()

	result, err := s.service.BulkSendForReview(ctx, "u1", dto.BulkReviewRequest{
		CompanyID: "comp1",
		WeekKey:   "2025-06-08",
		Confirm:   true,
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrBatchWrite)
	s.Nil(result)
	// No per-record fallback writes after a rejected batch.
	s.mockRequests.AssertNotCalled(s.T(), "CreateRequest", mock.Anything, mock.Anything)
	s.mockInvalidator.AssertNotCalled(s.T(), "InvalidateCache")
}

func (s *ReviewServiceTestSuite) TestBulkSendForReview_SelectionScopeSkipsReviewedAndForeign() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checks := []domain.Check{
		{ID: "a", CompanyID: "comp1", Date: date},
		{ID: "b", CompanyID: "comp1", Date: date, Reviewed: true},
		{ID: "c", CompanyID: "other", Date: date},
	}
	s.mockChecks.On("FindChecksByIDs", ctx, []string{"a", "b", "c"}).Return(checks, nil).Once()

	result, err := s.service.BulkSendForReview(ctx, "u1", dto.BulkReviewRequest{
		CheckIDs: []string{"a", "b", "c"},
	})

	s.Require().NoError(err)
	s.Equal(1, result.TargetCount)
	s.Equal("selected checks", result.ScopeLabel)
}

func (s *ReviewServiceTestSuite) TestSendWeekForReview_DuplicateOpenRequestRefused() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	open := &domain.ReviewRequest{ID: "req1", Status: domain.ReviewStatusPending}
	s.mockRequests.On("FindOpenRequest", ctx, "comp1", "2025-06-08", "u1").Return(open, nil).Once()

	result, err := s.service.SendWeekForReview(ctx, "u1", dto.SendWeekForReviewRequest{
		CompanyID: "comp1",
		WeekKey:   "2025-06-08",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(result)
	s.mockRequests.AssertNotCalled(s.T(), "CreateRequest", mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) TestReviewViaDialog_FlipsCorrelatedRequests() {
	ctx := context.Background()
	admin := domain.User{UserID: "admin1", Role: domain.RoleAdmin}
	s.expectActor(admin)

	check := &domain.Check{
		ID:        "chk1",
		CompanyID: "comp1",
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy: "u2",
	}
	s.mockChecks.On("FindCheckByID", ctx, "chk1").Return(check, nil).Once()
	s.mockChecks.On("SetReviewed", ctx, "chk1", true).Return(nil).Once()

	// The correlation widens to every request sharing (company, week, creator).
	correlated := []domain.ReviewRequest{
		{ID: "req1", CompanyID: "comp1", WeekKey: "2025-06-08", CreatedBy: "u2", Status: domain.ReviewStatusPending},
		{ID: "req2", CompanyID: "comp1", WeekKey: "2025-06-08", CreatedBy: "u2", Status: domain.ReviewStatusPending},
	}
	s.mockRequests.On("FindRequestsByCorrelation", ctx, "comp1", "2025-06-08", "u2").Return(correlated, nil).Once()
	s.mockRequests.On("SetRequestStatusOp", "req1", domain.ReviewStatusReviewed).Return(portsrepo.BatchOp{Kind: portsrepo.BatchUpdate, ID: "req1"}).Once()
	s.mockRequests.On("SetRequestStatusOp", "req2", domain.ReviewStatusReviewed).Return(portsrepo.BatchOp{Kind: portsrepo.BatchUpdate, ID: "req2"}).Once()
	s.mockBatch.On("Batch", ctx, mock.MatchedBy(func(ops []portsrepo.BatchOp) bool {
		return len(ops) == 2
	})).Return(nil).Once()
	s.mockInvalidator.On("InvalidateCache").Return().Once()

	err := s.service.ReviewViaDialog(ctx, "admin1", "chk1")

	s.Require().NoError(err)
	s.mockRequests.AssertExpectations(s.T())
	s.mockBatch.AssertExpectations(s.T())
}

func (s *ReviewServiceTestSuite) TestReviewViaDialog_BackFillsWhenNoRequestExists() {
	ctx := context.Background()
	admin := domain.User{UserID: "admin1", Role: domain.RoleAdmin}
	s.expectActor(admin)

	check := &domain.Check{
		ID:        "chk1",
		CompanyID: "comp1",
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy: "u2",
	}
	s.mockChecks.On("FindCheckByID", ctx, "chk1").Return(check, nil).Once()
	s.mockChecks.On("SetReviewed", ctx, "chk1", true).Return(nil).Once()
	s.mockRequests.On("FindRequestsByCorrelation", ctx, "comp1", "2025-06-08", "u2").Return([]domain.ReviewRequest{}, nil).Once()

	// Back-filled request carries the original creator, not the admin.
	s.mockRequests.On("CreateRequest", ctx, mock.MatchedBy(func(r domain.ReviewRequest) bool {
		return r.CheckID == "chk1" && r.CreatedBy == "u2" && r.Status == domain.ReviewStatusReviewed
	})).Return("req-new", nil).Once()
	s.mockInvalidator.On("InvalidateCache").Return().Once()

	err := s.service.ReviewViaDialog(ctx, "admin1", "chk1")

	s.Require().NoError(err)
	s.mockRequests.AssertExpectations(s.T())
	s.mockBatch.AssertNotCalled(s.T(), "Batch", mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) TestReviewViaDialog_NonAdminForbidden() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	err := s.service.ReviewViaDialog(ctx, "u1", "chk1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockChecks.AssertNotCalled(s.T(), "SetReviewed", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) TestMarkPaid_SkipsPaidAndKeepsGoingOnFailure() {
	ctx := context.Background()

	checks := []domain.Check{
		{ID: "a", CompanyID: "comp1"},
		{ID: "b", CompanyID: "comp1", Paid: true},
		{ID: "c", CompanyID: "comp1"},
	}
	s.mockChecks.On("FindChecksByIDs", ctx, []string{"a", "b", "c"}).Return(checks, nil).Once()
	s.mockChecks.On("SetPaid", ctx, "a", true).Return(assert.AnError).Once()
	s.mockChecks.On("SetPaid", ctx, "c", true).Return(nil).Once()
	s.mockInvalidator.On("InvalidateCache").Return().Once()

	result, err := s.service.MarkPaid(ctx, "u1", []string{"a", "b", "c"})

	s.Require().NoError(err)
	s.Equal(1, result.Marked)
	s.Equal(1, result.AlreadyPaid)
	s.Equal([]string{"a"}, result.Failed)
	// The already-paid check must never be written again.
	s.mockChecks.AssertNotCalled(s.T(), "SetPaid", ctx, "b", true)
}

func (s *ReviewServiceTestSuite) TestListReviewRequests_PagesNewestFirst() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	requests := make([]domain.ReviewRequest, 0, 5)
	for i := 0; i < 5; i++ {
		requests = append(requests, domain.ReviewRequest{
			ID:        string(rune('a' + i)),
			CompanyID: "comp1",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	s.mockRequests.On("FindRequestsByCompany", ctx, "comp1").Return(requests, nil).Once()

	resp, err := s.service.ListReviewRequests(ctx, "u1", dto.ReviewRequestListQuery{CompanyID: "comp1", Limit: 2})

	s.Require().NoError(err)
	s.Require().Len(resp.Requests, 2)
	s.Equal("e", resp.Requests[0].ID)
	s.Equal("d", resp.Requests[1].ID)
	s.NotEmpty(resp.NextCursor)
}

func (s *ReviewServiceTestSuite) TestListReviewRequests_TiedTimestampsServeEveryRecord() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	// A bulk send stamps one timestamp onto the whole batch.
	createdAt := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	requests := make([]domain.ReviewRequest, 0, 5)
	for i := 0; i < 5; i++ {
		requests = append(requests, domain.ReviewRequest{
			ID:        string(rune('a' + i)),
			CompanyID: "comp1",
			CreatedAt: createdAt,
		})
	}
	s.mockRequests.On("FindRequestsByCompany", ctx, "comp1").Return(requests, nil)

	var served []string
	cursor := ""
	for page := 0; page < 4; page++ {
		resp, err := s.service.ListReviewRequests(ctx, "u1", dto.ReviewRequestListQuery{
			CompanyID: "comp1", Limit: 2, Cursor: cursor,
		})
		s.Require().NoError(err)
		for _, r := range resp.Requests {
			served = append(served, r.ID)
		}
		if resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	s.Equal([]string{"e", "d", "c", "b", "a"}, served)
}

func (s *ReviewServiceTestSuite) TestListReviewRequests_ForeignCompanyForbidden() {
	ctx := context.Background()
	actor := domain.User{UserID: "u1", Role: domain.RoleUser, CompanyIDs: []string{"comp1"}}
	s.expectActor(actor)

	_, err := s.service.ListReviewRequests(ctx, "u1", dto.ReviewRequestListQuery{CompanyID: "other"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
