package testhelpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
	"github.com/Npcprogramming/Taro2.0/internal/ports/storage"
)

// MockAdvisor is a mock implementation of IAdvisor
type MockAdvisor struct {
	mock.Mock
}

var _ service.IAdvisor = (*MockAdvisor)(nil)

func (m *MockAdvisor) Advise(ctx context.Context, req domain.AdviceRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockAlerter is a mock implementation of IAlerterService
type MockAlerter struct {
	mock.Mock
}

var _ service.IAlerterService = (*MockAlerter)(nil)

func (m *MockAlerter) SendAlert(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockPublisher is a mock implementation of IDrawPublisher
type MockPublisher struct {
	mock.Mock
}

var _ service.IDrawPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishDraw(ctx context.Context, event *domain.DrawEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockBotService is a mock implementation of IBotService
type MockBotService struct {
	mock.Mock
}

var _ service.IBotService = (*MockBotService)(nil)

func (m *MockBotService) HandleCommand(ctx context.Context, sender domain.Sender, cmd domain.Command) error {
	args := m.Called(ctx, sender, cmd)
	return args.Error(0)
}

func (m *MockBotService) HandleCallback(ctx context.Context, sender domain.Sender, event domain.CallbackEvent) error {
	args := m.Called(ctx, sender, event)
	return args.Error(0)
}

func (m *MockBotService) HandlePhoto(ctx context.Context, sender domain.Sender, photo domain.PhotoUpload) error {
	args := m.Called(ctx, sender, photo)
	return args.Error(0)
}

// Images картинки карт в памяти
type Images map[string][]byte

var _ storage.IImageStore = Images(nil)

func (i Images) Load(_ context.Context, filename string) ([]byte, error) {
	data, ok := i[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, filename)
	}
	return data, nil
}

// Proofs сохранённые чеки в памяти
type Proofs struct {
	mu    sync.Mutex
	Saved map[int64][]byte
	Err   error
}

var _ storage.IProofStore = (*Proofs)(nil)

func NewProofs() *Proofs {
	return &Proofs{Saved: make(map[int64][]byte)}
}

func (p *Proofs) Save(_ context.Context, userID int64, data []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return "", p.Err
	}
	p.Saved[userID] = data
	return fmt.Sprintf("proofs/payment_proof_%d.jpg", userID), nil
}

// MockBroadcaster is a mock implementation of IBroadcaster
type MockBroadcaster struct {
	mock.Mock
}

var _ service.IBroadcaster = (*MockBroadcaster)(nil)

func (m *MockBroadcaster) SendDailyCards(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBroadcaster) NotifyExpiredSubscriptions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
