package services_test

import (
	"context"
	"sync"

	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/ownby4levy/topup-gateway/internal/infrastructure/truemoney"
)

// mockUserRepo holds accounts keyed by steam ID.
type mockUserRepo struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	findFn func(ctx context.Context, steamID string) (*domain.User, error)
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) FindBySteamID(ctx context.Context, steamID string) (*domain.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, steamID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[steamID]; ok {
		return u, nil
	}
	return nil, domain.NewAccountNotFoundError(steamID)
}

// mockLogRepo is an in-memory audit trail.
type mockLogRepo struct {
	mu   sync.Mutex
	logs []*domain.TopupLog

	insertFn func(ctx context.Context, log *domain.TopupLog) error
	existsFn func(ctx context.Context, voucherHash string) (bool, error)
	findFn   func(ctx context.Context, steamID string, limit int) ([]*domain.TopupLog, error)
	statsFn  func(ctx context.Context, steamID string) (*domain.TopupStats, error)
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{}
}

func (m *mockLogRepo) Insert(ctx context.Context, log *domain.TopupLog) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockLogRepo) ExistsByVoucherHash(ctx context.Context, voucherHash string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, voucherHash)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.logs {
		if l.VoucherHash == voucherHash && l.Amount > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLogRepo) FindBySteamID(ctx context.Context, steamID string, limit int) ([]*domain.TopupLog, error) {
	if m.findFn != nil {
		return m.findFn(ctx, steamID, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.TopupLog
	for i := len(m.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.logs[i].SteamID == steamID {
			out = append(out, m.logs[i])
		}
	}
	return out, nil
}

func (m *mockLogRepo) Stats(ctx context.Context, steamID string) (*domain.TopupStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, steamID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &domain.TopupStats{}
	for _, l := range m.logs {
		if l.SteamID == steamID && l.Amount > 0 {
			stats.TotalAmount += l.Amount
			stats.TotalTransactions++
			if stats.LastTopup == nil || l.CreatedAt.After(*stats.LastTopup) {
				created := l.CreatedAt
				stats.LastTopup = &created
			}
		}
	}
	if stats.TotalTransactions > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalTransactions)
	}
	return stats, nil
}

func (m *mockLogRepo) successCount(voucherHash string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, l := range m.logs {
		if l.VoucherHash == voucherHash && l.Amount > 0 {
			count++
		}
	}
	return count
}

func (m *mockLogRepo) all() []*domain.TopupLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.TopupLog(nil), m.logs...)
}

// mockCreditStore mimics the postgres coordinator: the balance increment and
// the success row commit together, and a second credited row for the same
// voucher violates uniqueness.
type mockCreditStore struct {
	mu    sync.Mutex
	users *mockUserRepo
	logs  *mockLogRepo

	creditFn func(ctx context.Context, log *domain.TopupLog) (float64, error)
}

func newMockCreditStore(users *mockUserRepo, logs *mockLogRepo) *mockCreditStore {
	return &mockCreditStore{users: users, logs: logs}
}

func (m *mockCreditStore) CreditAndLog(ctx context.Context, log *domain.TopupLog) (float64, error) {
	if m.creditFn != nil {
		return m.creditFn(ctx, log)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.logs.successCount(log.VoucherHash) > 0 {
		return 0, domain.NewVoucherAlreadyUsedError(log.VoucherHash)
	}

	m.users.mu.Lock()
	u, ok := m.users.users[log.SteamID]
	if !ok {
		m.users.mu.Unlock()
		return 0, domain.NewCreditFailedError(domain.NewAccountNotFoundError(log.SteamID))
	}
	u.Balance += log.Amount
	newBalance := u.Balance
	m.users.mu.Unlock()

	m.logs.Insert(ctx, log)
	return newBalance, nil
}

// mockRedeemer answers redemption calls without a network.
type mockRedeemer struct {
	mu    sync.Mutex
	calls int

	redeemFn func(ctx context.Context, voucherHash string) (*truemoney.RedeemResponse, error)
}

func (m *mockRedeemer) Redeem(ctx context.Context, voucherHash string) (*truemoney.RedeemResponse, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.redeemFn != nil {
		return m.redeemFn(ctx, voucherHash)
	}
	return &truemoney.RedeemResponse{Amount: 100, AmountFound: true}, nil
}

func (m *mockRedeemer) HealthCheck(ctx context.Context) error { return nil }

func (m *mockRedeemer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
