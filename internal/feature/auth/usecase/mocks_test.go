package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"vitality_backend/internal/feature/auth/domain/entity"
)

// Hand-rolled mocks with func fields so each test overrides only what it needs.

type mockUserRepo struct {
	CreateFunc                      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc                 func(ctx context.Context, email string) (*entity.User, error)
	FindByEmailIncludingDeletedFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc                    func(ctx context.Context, id uint) (*entity.User, error)
	UpdatePasswordFunc              func(ctx context.Context, id uint, passwordHash string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepo) FindByEmailIncludingDeleted(ctx context.Context, email string) (*entity.User, error) {
	return m.FindByEmailIncludingDeletedFunc(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return m.UpdatePasswordFunc(ctx, id, passwordHash)
}

// memOTPRepo is an in-memory OTPRepository faithful to the contract: at most
// one record per (user, purpose), guarded single-use consumption.
type memOTPRepo struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]*entity.OTPRecord
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{records: make(map[uint]*entity.OTPRecord)}
}

func (m *memOTPRepo) Replace(_ context.Context, record *entity.OTPRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.records {
		if r.UserID == record.UserID && r.Purpose == record.Purpose {
			delete(m.records, id)
		}
	}
	m.nextID++
	record.ID = m.nextID
	clone := *record
	m.records[record.ID] = &clone
	return nil
}

func (m *memOTPRepo) Find(_ context.Context, userID uint, purpose entity.OTPPurpose) (*entity.OTPRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == userID && r.Purpose == purpose {
			clone := *r
			return &clone, nil
		}
	}
	return nil, ErrOTPNotFound
}

func (m *memOTPRepo) Consume(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return false, nil
	}
	if r.UsedAt != nil {
		return false, nil
	}
	now := time.Now()
	r.UsedAt = &now
	return true, nil
}

func (m *memOTPRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memOTPRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type memRefreshRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.RefreshToken
}

func newMemRefreshRepo() *memRefreshRepo {
	return &memRefreshRepo{rows: make(map[string]*entity.RefreshToken)}
}

func (m *memRefreshRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *token
	m.rows[token.Token] = &clone
	return nil
}

func (m *memRefreshRepo) Find(_ context.Context, userID uint, token string) (*entity.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[token]
	if !ok || row.UserID != userID {
		return nil, ErrRefreshTokenNotFound
	}
	clone := *row
	return &clone, nil
}

func (m *memRefreshRepo) DeleteByToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, token)
	return nil
}

func (m *memRefreshRepo) DeleteByUserID(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, row := range m.rows {
		if row.UserID == userID {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

func (m *memRefreshRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type mockMail struct {
	mu   sync.Mutex
	sent []string // codes, in order
	err  error
}

func (m *mockMail) SendOTP(_, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, code)
	return nil
}

func (m *mockMail) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

type auditEvent struct {
	EventType string
	ClientIP  string
}

type mockAudit struct {
	mu     sync.Mutex
	events []auditEvent
}

func (m *mockAudit) Emit(eventType, clientIP, _ string, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, auditEvent{EventType: eventType, ClientIP: clientIP})
}

func (m *mockAudit) recorded() []auditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]auditEvent(nil), m.events...)
}

var errMockFailure = errors.New("mock failure")
