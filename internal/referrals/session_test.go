package referrals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/pagination"
	"github.com/ameedanxari/menumaker-backend/pkg/resource"
)

type stubReferralRepo struct {
	accounts    map[uuid.UUID]*models.ReferralAccount
	byCode      map[string]*models.ReferralAccount
	lookupCalls int
	recorded    []*models.ReferralEvent
}

func (s *stubReferralRepo) GetAccount(ctx context.Context, userID uuid.UUID) (*models.ReferralAccount, error) {
	if account, ok := s.accounts[userID]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReferralRepo) GetAccountByCode(ctx context.Context, code string) (*models.ReferralAccount, error) {
	s.lookupCalls++
	if account, ok := s.byCode[code]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReferralRepo) RecordEvent(ctx context.Context, event *models.ReferralEvent) (*models.ReferralEvent, error) {
	event.ID = uuid.New()
	s.recorded = append(s.recorded, event)
	return event, nil
}

func (s *stubReferralRepo) GetHistory(ctx context.Context, userID uuid.UUID, params pagination.Params) (*EventList, error) {
	var events []models.ReferralEvent
	for _, e := range s.recorded {
		if e.ReferrerUserID == userID {
			events = append(events, *e)
		}
	}
	return &EventList{Events: events}, nil
}

func newTestSession(t *testing.T, userID uuid.UUID, repo Repository) *Session {
	t.Helper()
	session, err := NewSession(userID, 500, repo)
	require.NoError(t, err)
	return session
}

func TestApplyCodeEmptySkipsRepository(t *testing.T) {
	repo := &stubReferralRepo{}
	session := newTestSession(t, uuid.New(), repo)

	got := resource.Await(session.ApplyCode(context.Background(), "   "))
	require.True(t, got.IsError())
	require.Zero(t, repo.lookupCalls)

	held, started := session.LastApply()
	require.True(t, started)
	require.Equal(t, got.Message(), held.Message(), "the refusal message is held verbatim")
}

func TestApplyCodeOwnCodeSkipsRepository(t *testing.T) {
	userID := uuid.New()
	account := &models.ReferralAccount{UserID: userID, Code: "ASHA500"}
	repo := &stubReferralRepo{accounts: map[uuid.UUID]*models.ReferralAccount{userID: account}}
	session := newTestSession(t, userID, repo)

	resource.Await(session.LoadAccount(context.Background()))

	got := resource.Await(session.ApplyCode(context.Background(), "ASHA500"))
	require.True(t, got.IsError())
	require.Zero(t, repo.lookupCalls, "the cached own code refuses locally")
}

func TestApplyCodeOwnCodeCaughtByStorageWhenCacheCold(t *testing.T) {
	userID := uuid.New()
	account := &models.ReferralAccount{UserID: userID, Code: "ASHA500"}
	repo := &stubReferralRepo{
		accounts: map[uuid.UUID]*models.ReferralAccount{userID: account},
		byCode:   map[string]*models.ReferralAccount{"ASHA500": account},
	}
	session := newTestSession(t, userID, repo)

	// No LoadAccount: the local guard has nothing to compare against.
	got := resource.Await(session.ApplyCode(context.Background(), "ASHA500"))
	require.True(t, got.IsError())
	require.Equal(t, 1, repo.lookupCalls)
	require.Empty(t, repo.recorded)
}

func TestApplyCodeRecordsEvent(t *testing.T) {
	userID := uuid.New()
	referrer := &models.ReferralAccount{UserID: uuid.New(), Code: "FRIEND1"}
	repo := &stubReferralRepo{byCode: map[string]*models.ReferralAccount{"FRIEND1": referrer}}
	session := newTestSession(t, userID, repo)

	got := resource.Await(session.ApplyCode(context.Background(), "FRIEND1"))
	require.True(t, got.IsSuccess())

	event := got.MustValue()
	require.Equal(t, referrer.UserID, event.ReferrerUserID)
	require.Equal(t, userID, event.RefereeUserID)
	require.Equal(t, 500, event.RewardCents)
	require.Len(t, repo.recorded, 1)
}

func TestApplyCodeUnknownCodeMessageHeldVerbatim(t *testing.T) {
	repo := &stubReferralRepo{}
	session := newTestSession(t, uuid.New(), repo)

	got := resource.Await(session.ApplyCode(context.Background(), "NOPE"))
	require.True(t, got.IsError())

	held, started := session.LastApply()
	require.True(t, started)
	require.Equal(t, got.Message(), held.Message())
}

func TestApplyCodeCaseSensitiveOwnMatch(t *testing.T) {
	userID := uuid.New()
	account := &models.ReferralAccount{UserID: userID, Code: "ASHA500"}
	other := &models.ReferralAccount{UserID: uuid.New(), Code: "asha500"}
	repo := &stubReferralRepo{
		accounts: map[uuid.UUID]*models.ReferralAccount{userID: account},
		byCode:   map[string]*models.ReferralAccount{"asha500": other},
	}
	session := newTestSession(t, userID, repo)

	resource.Await(session.LoadAccount(context.Background()))

	got := resource.Await(session.ApplyCode(context.Background(), "asha500"))
	require.True(t, got.IsSuccess(), "a differently cased code belongs to someone else")
}

func TestLoadAccountHoldsSnapshot(t *testing.T) {
	userID := uuid.New()
	account := &models.ReferralAccount{UserID: userID, Code: "ASHA500", TotalReferrals: 7}
	repo := &stubReferralRepo{accounts: map[uuid.UUID]*models.ReferralAccount{userID: account}}
	session := newTestSession(t, userID, repo)

	_, started := session.Account()
	require.False(t, started)

	got := resource.Await(session.LoadAccount(context.Background()))
	require.True(t, got.IsSuccess())

	held, started := session.Account()
	require.True(t, started)
	require.Equal(t, 7, held.MustValue().TotalReferrals)
}
