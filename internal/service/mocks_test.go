package service

import (
	"context"
	"io"
	"time"

	"github.com/bookmylastwishes/portal/internal/model"
)

// Function-field mocks. Unset fields return zero values so each test only
// wires the calls it cares about.

type mockUserRepository struct {
	createFn         func(user *model.User) error
	byIDFn           func(id string) (*model.User, error)
	byEmailFn        func(email string) (*model.User, error)
	updatePasswordFn func(id, passwordHash string) error
	deleteFn         func(id string) error
}

func (m *mockUserRepository) Create(user *model.User) error {
	if m.createFn != nil {
		return m.createFn(user)
	}
	return nil
}

func (m *mockUserRepository) ByID(id string) (*model.User, error) {
	if m.byIDFn != nil {
		return m.byIDFn(id)
	}
	return nil, nil
}

func (m *mockUserRepository) ByEmail(email string) (*model.User, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(email)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdatePassword(id, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(id, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockSessionRepository struct {
	createFn         func(session *model.Session) error
	byIDFn           func(id string) (*model.Session, error)
	markMigratedFn   func(id string) (bool, error)
	deleteFn         func(id string) error
	deleteByUserFn   func(userID string) error
	deleteOthersFn   func(userID, keepSessionID string) error
	deleteExpiredFn  func() (int64, error)
}

func (m *mockSessionRepository) Create(session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(session)
	}
	return nil
}

func (m *mockSessionRepository) ByID(id string) (*model.Session, error) {
	if m.byIDFn != nil {
		return m.byIDFn(id)
	}
	return nil, nil
}

func (m *mockSessionRepository) MarkMigrated(id string) (bool, error) {
	if m.markMigratedFn != nil {
		return m.markMigratedFn(id)
	}
	return true, nil
}

func (m *mockSessionRepository) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByUserID(userID string) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteOthers(userID, keepSessionID string) error {
	if m.deleteOthersFn != nil {
		return m.deleteOthersFn(userID, keepSessionID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired() (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn()
	}
	return 0, nil
}

type mockTempPatronRepository struct {
	upsertFn       func(tp *model.TempPatron) error
	byEmailFn      func(email string) (*model.TempPatron, error)
	claimFn        func(id string) error
	releaseClaimFn func(id string) error
	deleteFn       func(id string) error
}

func (m *mockTempPatronRepository) Upsert(tp *model.TempPatron) error {
	if m.upsertFn != nil {
		return m.upsertFn(tp)
	}
	return nil
}

func (m *mockTempPatronRepository) ByEmail(email string) (*model.TempPatron, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(email)
	}
	return nil, nil
}

func (m *mockTempPatronRepository) Claim(id string) error {
	if m.claimFn != nil {
		return m.claimFn(id)
	}
	return nil
}

func (m *mockTempPatronRepository) ReleaseClaim(id string) error {
	if m.releaseClaimFn != nil {
		return m.releaseClaimFn(id)
	}
	return nil
}

func (m *mockTempPatronRepository) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockPatronRepository struct {
	upsertFn func(patron *model.Patron) error
	byIDFn   func(id string) (*model.Patron, error)
	recentFn func(ctx context.Context, limit int) ([]*model.Patron, error)
	deleteFn func(id string) error
}

func (m *mockPatronRepository) Upsert(patron *model.Patron) error {
	if m.upsertFn != nil {
		return m.upsertFn(patron)
	}
	return nil
}

func (m *mockPatronRepository) ByID(id string) (*model.Patron, error) {
	if m.byIDFn != nil {
		return m.byIDFn(id)
	}
	return nil, nil
}

func (m *mockPatronRepository) Recent(ctx context.Context, limit int) ([]*model.Patron, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockPatronRepository) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockTokenRepository struct {
	createFn         func(token *model.Token) error
	consumeFn        func(value string) (*model.Token, error)
	deleteByUserIDFn func(userID, tokenType string) error
}

func (m *mockTokenRepository) Create(token *model.Token) error {
	if m.createFn != nil {
		return m.createFn(token)
	}
	return nil
}

func (m *mockTokenRepository) ConsumeToken(token string) (*model.Token, error) {
	if m.consumeFn != nil {
		return m.consumeFn(token)
	}
	return nil, nil
}

func (m *mockTokenRepository) DeleteByUserAndType(userID, tokenType string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(userID, tokenType)
	}
	return nil
}

type mockPaymentRepository struct {
	createFn         func(payment *model.Payment) error
	byIDFn           func(id string) (*model.Payment, error)
	byOrderIDFn      func(orderID string) (*model.Payment, error)
	byUserIDFn       func(userID string) ([]*model.Payment, error)
	updateStatusFn   func(id, status, paymentID string) error
	latestVerifiedFn func(userID string) (*model.Payment, error)
	deleteByUserFn   func(userID string) error
}

func (m *mockPaymentRepository) Create(payment *model.Payment) error {
	if m.createFn != nil {
		return m.createFn(payment)
	}
	return nil
}

func (m *mockPaymentRepository) ByID(id string) (*model.Payment, error) {
	if m.byIDFn != nil {
		return m.byIDFn(id)
	}
	return nil, nil
}

func (m *mockPaymentRepository) ByOrderID(orderID string) (*model.Payment, error) {
	if m.byOrderIDFn != nil {
		return m.byOrderIDFn(orderID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) ByUserID(userID string) ([]*model.Payment, error) {
	if m.byUserIDFn != nil {
		return m.byUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) UpdateStatus(id, status, paymentID string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(id, status, paymentID)
	}
	return nil
}

func (m *mockPaymentRepository) LatestVerified(userID string) (*model.Payment, error) {
	if m.latestVerifiedFn != nil {
		return m.latestVerifiedFn(userID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) DeleteByUserID(userID string) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(userID)
	}
	return nil
}

type mockWishRepository struct {
	createFn         func(wish *model.Wish) error
	byIDFn           func(userID, wishID string) (*model.Wish, error)
	byUserIDFn       func(userID string) ([]*model.Wish, error)
	updateFn         func(wish *model.Wish) error
	deleteFn         func(userID, wishID string) error
	deleteByUserIDFn func(userID string) error
}

func (m *mockWishRepository) Create(wish *model.Wish) error {
	if m.createFn != nil {
		return m.createFn(wish)
	}
	return nil
}

func (m *mockWishRepository) ByID(userID, wishID string) (*model.Wish, error) {
	if m.byIDFn != nil {
		return m.byIDFn(userID, wishID)
	}
	return nil, nil
}

func (m *mockWishRepository) ByUserID(userID string) ([]*model.Wish, error) {
	if m.byUserIDFn != nil {
		return m.byUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockWishRepository) Update(wish *model.Wish) error {
	if m.updateFn != nil {
		return m.updateFn(wish)
	}
	return nil
}

func (m *mockWishRepository) Delete(userID, wishID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, wishID)
	}
	return nil
}

func (m *mockWishRepository) DeleteByUserID(userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(userID)
	}
	return nil
}

type mockDocumentRepository struct {
	createFn         func(doc *model.Document) error
	byIDFn           func(userID, docID string) (*model.Document, error)
	byUserIDFn       func(userID string) ([]*model.Document, error)
	deleteFn         func(userID, docID string) error
	deleteByUserIDFn func(userID string) error
}

func (m *mockDocumentRepository) Create(doc *model.Document) error {
	if m.createFn != nil {
		return m.createFn(doc)
	}
	return nil
}

func (m *mockDocumentRepository) ByID(userID, docID string) (*model.Document, error) {
	if m.byIDFn != nil {
		return m.byIDFn(userID, docID)
	}
	return nil, nil
}

func (m *mockDocumentRepository) ByUserID(userID string) ([]*model.Document, error) {
	if m.byUserIDFn != nil {
		return m.byUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockDocumentRepository) Delete(userID, docID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, docID)
	}
	return nil
}

func (m *mockDocumentRepository) DeleteByUserID(userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(userID)
	}
	return nil
}

type mockLetterRepository struct {
	createFn         func(letter *model.Letter) error
	byIDFn           func(userID, letterID string) (*model.Letter, error)
	byUserIDFn       func(userID string) ([]*model.Letter, error)
	countByUserIDFn  func(userID string) (int, error)
	updateFn         func(letter *model.Letter) error
	deleteFn         func(userID, letterID string) error
	deleteByUserIDFn func(userID string) error
}

func (m *mockLetterRepository) Create(letter *model.Letter) error {
	if m.createFn != nil {
		return m.createFn(letter)
	}
	return nil
}

func (m *mockLetterRepository) ByID(userID, letterID string) (*model.Letter, error) {
	if m.byIDFn != nil {
		return m.byIDFn(userID, letterID)
	}
	return nil, nil
}

func (m *mockLetterRepository) ByUserID(userID string) ([]*model.Letter, error) {
	if m.byUserIDFn != nil {
		return m.byUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockLetterRepository) CountByUserID(userID string) (int, error) {
	if m.countByUserIDFn != nil {
		return m.countByUserIDFn(userID)
	}
	return 0, nil
}

func (m *mockLetterRepository) Update(letter *model.Letter) error {
	if m.updateFn != nil {
		return m.updateFn(letter)
	}
	return nil
}

func (m *mockLetterRepository) Delete(userID, letterID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, letterID)
	}
	return nil
}

func (m *mockLetterRepository) DeleteByUserID(userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(userID)
	}
	return nil
}

type mockNomineeRepository struct {
	createFn         func(nominee *model.Nominee) error
	byIDFn           func(userID, nomineeID string) (*model.Nominee, error)
	byUserIDFn       func(userID string) ([]*model.Nominee, error)
	countByUserIDFn  func(userID string) (int, error)
	updateFn         func(nominee *model.Nominee) error
	deleteFn         func(userID, nomineeID string) error
	deleteByUserIDFn func(userID string) error
}

func (m *mockNomineeRepository) Create(nominee *model.Nominee) error {
	if m.createFn != nil {
		return m.createFn(nominee)
	}
	return nil
}

func (m *mockNomineeRepository) ByID(userID, nomineeID string) (*model.Nominee, error) {
	if m.byIDFn != nil {
		return m.byIDFn(userID, nomineeID)
	}
	return nil, nil
}

func (m *mockNomineeRepository) ByUserID(userID string) ([]*model.Nominee, error) {
	if m.byUserIDFn != nil {
		return m.byUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockNomineeRepository) CountByUserID(userID string) (int, error) {
	if m.countByUserIDFn != nil {
		return m.countByUserIDFn(userID)
	}
	return 0, nil
}

func (m *mockNomineeRepository) Update(nominee *model.Nominee) error {
	if m.updateFn != nil {
		return m.updateFn(nominee)
	}
	return nil
}

func (m *mockNomineeRepository) Delete(userID, nomineeID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, nomineeID)
	}
	return nil
}

func (m *mockNomineeRepository) DeleteByUserID(userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(userID)
	}
	return nil
}

type mockMFARepository struct {
	createFn         func(factor *model.MFAFactor) error
	byUserIDFn       func(userID string) (*model.MFAFactor, error)
	markVerifiedFn   func(id string) error
	deleteByUserIDFn func(userID string) error
}

func (m *mockMFARepository) Create(factor *model.MFAFactor) error {
	if m.createFn != nil {
		return m.createFn(factor)
	}
	return nil
}

func (m *mockMFARepository) ByUserID(userID string) (*model.MFAFactor, error) {
	if m.byUserIDFn != nil {
		return m.byUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockMFARepository) MarkVerified(id string) error {
	if m.markVerifiedFn != nil {
		return m.markVerifiedFn(id)
	}
	return nil
}

func (m *mockMFARepository) DeleteByUserID(userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(userID)
	}
	return nil
}

type mockStorage struct {
	saveFn         func(ctx context.Context, path string, file io.Reader) error
	moveFn         func(ctx context.Context, src, dst string) error
	downloadFn     func(ctx context.Context, path string) (io.ReadCloser, error)
	deleteFn       func(ctx context.Context, path string) error
	deletePrefixFn func(ctx context.Context, prefix string) error
	publicURLFn    func(path string) string
	presignedFn    func(path string, expiry time.Duration) (string, error)
}

func (m *mockStorage) Save(ctx context.Context, path string, file io.Reader) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, path, file)
	}
	return nil
}

func (m *mockStorage) Move(ctx context.Context, src, dst string) error {
	if m.moveFn != nil {
		return m.moveFn(ctx, src, dst)
	}
	return nil
}

func (m *mockStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, path)
	}
	return nil, nil
}

func (m *mockStorage) Delete(ctx context.Context, path string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, path)
	}
	return nil
}

func (m *mockStorage) DeletePrefix(ctx context.Context, prefix string) error {
	if m.deletePrefixFn != nil {
		return m.deletePrefixFn(ctx, prefix)
	}
	return nil
}

func (m *mockStorage) PublicURL(path string) string {
	if m.publicURLFn != nil {
		return m.publicURLFn(path)
	}
	return "https://files.test/" + path
}

func (m *mockStorage) PresignedURL(path string, expiry time.Duration) (string, error) {
	if m.presignedFn != nil {
		return m.presignedFn(path, expiry)
	}
	return "https://files.test/signed/" + path, nil
}
