package services_test

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock CheckRepository ---
type MockCheckRepository struct {
	mock.Mock
}

func (m *MockCheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) FindChecksByIDs(ctx context.Context, checkIDs []string) ([]domain.Check, error) {
	args := m.Called(ctx, checkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckRepository) FindAllChecks(ctx context.Context) ([]domain.Check, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckRepository) FindChecksByCompanies(ctx context.Context, companyIDs []string) ([]domain.Check, error) {
	args := m.Called(ctx, companyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckRepository) FindUnreviewedByCompany(ctx context.Context, companyID string) ([]domain.Check, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckRepository) SetReviewed(ctx context.Context, checkID string, reviewed bool) error {
	args := m.Called(ctx, checkID, reviewed)
	return args.Error(0)
}

func (m *MockCheckRepository) SetPaid(ctx context.Context, checkID string, paid bool) error {
	args := m.Called(ctx, checkID, paid)
	return args.Error(0)
}

func (m *MockCheckRepository) SetReviewedOp(checkID string, reviewed bool) portsrepo.BatchOp {
	args := m.Called(checkID, reviewed)
	return args.Get(0).(portsrepo.BatchOp)
}

var _ portsrepo.CheckRepository = (*MockCheckRepository)(nil)

// --- Mock ReviewRequestRepository ---
type MockReviewRequestRepository struct {
	mock.Mock
}

func (m *MockReviewRequestRepository) FindRequestsByCorrelation(ctx context.Context, companyID, weekKey, createdBy string) ([]domain.ReviewRequest, error) {
	args := m.Called(ctx, companyID, weekKey, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) FindOpenRequest(ctx context.Context, companyID, weekKey, createdBy string) (*domain.ReviewRequest, error) {
	args := m.Called(ctx, companyID, weekKey, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) FindRequestsByCompany(ctx context.Context, companyID string) ([]domain.ReviewRequest, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) CreateRequest(ctx context.Context, req domain.ReviewRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockReviewRequestRepository) SetRequestStatus(ctx context.Context, requestID string, status domain.ReviewRequestStatus) error {
	args := m.Called(ctx, requestID, status)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) CreateRequestOp(req domain.ReviewRequest) portsrepo.BatchOp {
	args := m.Called(req)
	return args.Get(0).(portsrepo.BatchOp)
}

func (m *MockReviewRequestRepository) SetRequestStatusOp(requestID string, status domain.ReviewRequestStatus) portsrepo.BatchOp {
	args := m.Called(requestID, status)
	return args.Get(0).(portsrepo.BatchOp)
}

var _ portsrepo.ReviewRequestRepository = (*MockReviewRequestRepository)(nil)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindAllUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByUIDs(ctx context.Context, uids []string) ([]domain.User, error) {
	args := m.Called(ctx, uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock BatchRunner ---
type MockBatchRunner struct {
	mock.Mock
}

func (m *MockBatchRunner) Batch(ctx context.Context, ops []portsrepo.BatchOp) error {
	args := m.Called(ctx, ops)
	return args.Error(0)
}

var _ portsrepo.BatchRunner = (*MockBatchRunner)(nil)

// --- Mock CacheInvalidator ---
type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) InvalidateCache() {
	m.Called()
}

var _ portssvc.CacheInvalidator = (*MockCacheInvalidator)(nil)

// --- Mock PDFExporter ---
type MockPDFExporter struct {
	mock.Mock
}

func (m *MockPDFExporter) ExportPDF(ctx context.Context, checkIDs []string, weekKey string) ([]byte, error) {
	args := m.Called(ctx, checkIDs, weekKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.PDFExporter = (*MockPDFExporter)(nil)
