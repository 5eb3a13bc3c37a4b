package referrals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/pagination"
	"github.com/ameedanxari/menumaker-backend/pkg/resource"
)

// Session applies referral codes for one user and caches that user's own
// account. Locally detectable failures, a blank code or the user's own code,
// are refused before any repository call; everything else is forwarded and
// the outcome's message is held verbatim.
type Session struct {
	userID      uuid.UUID
	rewardCents int
	repo        Repository

	account resource.Holder[models.ReferralAccount]
	apply   resource.Holder[models.ReferralEvent]
}

// NewSession scopes a referral session to one user. rewardCents is the credit
// granted to the referrer per applied code.
func NewSession(userID uuid.UUID, rewardCents int, repo Repository) (*Session, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	if rewardCents < 0 {
		return nil, fmt.Errorf("reward must not be negative")
	}
	if repo == nil {
		return nil, fmt.Errorf("referrals repository required")
	}
	return &Session{userID: userID, rewardCents: rewardCents, repo: repo}, nil
}

// LoadAccount refreshes the held account snapshot.
func (s *Session) LoadAccount(ctx context.Context) <-chan resource.Resource[models.ReferralAccount] {
	token := s.account.Begin()
	ch := resource.Go(ctx, func(ctx context.Context) (models.ReferralAccount, error) {
		account, err := s.repo.GetAccount(ctx, s.userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ReferralAccount{}, pkgerrors.New(pkgerrors.CodeNotFound, "referral account not found")
			}
			return models.ReferralAccount{}, err
		}
		return *account, nil
	})
	return tee(ch, token, &s.account)
}

// Account returns the held account envelope; the boolean is false when no
// load was ever issued.
func (s *Session) Account() (resource.Resource[models.ReferralAccount], bool) {
	return s.account.Get()
}

// ApplyCode applies someone else's referral code on behalf of this session's
// user. A blank code and the user's own code are both refused without touching
// the repository; the own-code comparison is case-sensitive against the cached
// account.
func (s *Session) ApplyCode(ctx context.Context, code string) <-chan resource.Resource[models.ReferralEvent] {
	if strings.TrimSpace(code) == "" {
		return s.refuse(pkgerrors.New(pkgerrors.CodeEmptyCode, "referral code is required"))
	}
	if own, ok := s.ownCode(); ok && code == own {
		return s.refuse(pkgerrors.New(pkgerrors.CodeSelfUseProhibited, "you cannot apply your own code"))
	}

	token := s.apply.Begin()
	ch := resource.Go(ctx, func(ctx context.Context) (models.ReferralEvent, error) {
		referrer, err := s.repo.GetAccountByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ReferralEvent{}, pkgerrors.New(pkgerrors.CodeNotFound, "referral code not found")
			}
			return models.ReferralEvent{}, err
		}
		// Storage also refuses self-referral, for callers with a stale or
		// never-loaded account cache.
		if referrer.UserID == s.userID {
			return models.ReferralEvent{}, pkgerrors.New(pkgerrors.CodeSelfUseProhibited, "you cannot apply your own code")
		}
		event := &models.ReferralEvent{
			ReferrerUserID: referrer.UserID,
			RefereeUserID:  s.userID,
			Code:           code,
			RewardCents:    s.rewardCents,
			Successful:     true,
		}
		recorded, err := s.repo.RecordEvent(ctx, event)
		if err != nil {
			return models.ReferralEvent{}, err
		}
		return *recorded, nil
	})
	return tee(ch, token, &s.apply)
}

// LastApply returns the held outcome of the most recent ApplyCode; the
// boolean is false when no apply was ever issued. Error messages are the
// originals, unrephrased.
func (s *Session) LastApply() (resource.Resource[models.ReferralEvent], bool) {
	return s.apply.Get()
}

// History pages through the user's referral events, newest first.
func (s *Session) History(ctx context.Context, params pagination.Params) <-chan resource.Resource[EventList] {
	return resource.Go(ctx, func(ctx context.Context) (EventList, error) {
		list, err := s.repo.GetHistory(ctx, s.userID, params)
		if err != nil {
			return EventList{}, err
		}
		return *list, nil
	})
}

func (s *Session) ownCode() (string, bool) {
	held, started := s.account.Get()
	if !started {
		return "", false
	}
	account, ok := held.Value()
	if !ok || account.Code == "" {
		return "", false
	}
	return account.Code, true
}

// refuse resolves the apply holder to a local failure and emits it without a
// repository round trip.
func (s *Session) refuse(err error) <-chan resource.Resource[models.ReferralEvent] {
	token := s.apply.Begin()
	fail := resource.Fail[models.ReferralEvent](err.Error())
	s.apply.Resolve(token, fail)
	out := make(chan resource.Resource[models.ReferralEvent], 2)
	out <- resource.Loading[models.ReferralEvent]()
	out <- fail
	close(out)
	return out
}

// tee mirrors the envelope stream to the caller while installing terminal
// values into the session holder under the issued token.
func tee[T any](ch <-chan resource.Resource[T], token uint64, holder *resource.Holder[T]) <-chan resource.Resource[T] {
	out := make(chan resource.Resource[T], 2)
	go func() {
		defer close(out)
		for r := range ch {
			if r.Terminal() {
				holder.Resolve(token, r)
			}
			out <- r
		}
	}()
	return out
}
