package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

const (
	// codeAlphabet leaves out 0, O, 1, I and L so codes survive being read
	// aloud or copied by hand.
	codeAlphabet  = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	codeLength    = 8
	tokenLength   = 16

	maxShareAttempts = 5
)

type accessService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAccessService(uow db.UnitOfWork, observers ...UseCaseObserver) AccessService {
	return &accessService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Share issues a new code and token for the project. Earlier grants stay
// valid until revoked.
func (s *accessService) Share(ctx context.Context, projectID string) (g *domain.AccessGrant, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "access.share", startedAt, map[string]any{"project_id": projectID}, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := r.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		for attempt := 0; attempt < maxShareAttempts; attempt++ {
			code, err := randomString(codeAlphabet, codeLength)
			if err != nil {
				return err
			}
			token, err := randomString(tokenAlphabet, tokenLength)
			if err != nil {
				return err
			}
			free, err := isFree(ctx, r, code, token)
			if err != nil {
				return err
			}
			if !free {
				continue
			}
			g = &domain.AccessGrant{
				Code:      code,
				Token:     token,
				OwnerID:   p.OwnerID,
				ProjectID: p.ID,
				CreatedAt: startedAt,
			}
			return r.access.Create(ctx, g)
		}
		return fmt.Errorf("generating unique access code after %d attempts", maxShareAttempts)
	})
	return g, err
}

func (s *accessService) Resolve(ctx context.Context, identifier string) (g *domain.AccessGrant, err error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrAccessNotFound
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		var err error
		g, err = r.access.GetByCode(ctx, strings.ToUpper(identifier))
		if errors.Is(err, domain.ErrAccessNotFound) {
			g, err = r.access.GetByToken(ctx, identifier)
		}
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := r.access.RecordView(ctx, g.Code, now); err != nil {
			return err
		}
		g.ViewCount++
		g.LastAccessed = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *accessService) List(ctx context.Context, projectID string) ([]*domain.AccessGrant, error) {
	var out []*domain.AccessGrant
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = reposFor(tx).access.ListByProject(ctx, projectID)
		return err
	})
	return out, err
}

// Revoke removes every grant of the project and returns how many there were.
func (s *accessService) Revoke(ctx context.Context, projectID string) (n int, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "access.revoke", startedAt, map[string]any{"project_id": projectID, "revoked": n}, err)
	}()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		n, err = reposFor(tx).access.DeleteByProject(ctx, projectID)
		return err
	})
	return n, err
}

func isFree(ctx context.Context, r txRepos, code, token string) (bool, error) {
	if _, err := r.access.GetByCode(ctx, code); !errors.Is(err, domain.ErrAccessNotFound) {
		return false, err
	}
	if _, err := r.access.GetByToken(ctx, token); !errors.Is(err, domain.ErrAccessNotFound) {
		return false, err
	}
	return true, nil
}

func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}
