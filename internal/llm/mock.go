package llm

import (
	"context"
	"strings"
	"sync"
)

const mockGeneration = `[CAPTION] Pagi yang tenang dengan secangkir kopi. Cahaya matahari masuk pelan lewat jendela. Hari ini terasa ringan. #kopi #pagi #slowliving #ngopi #santai
A quiet morning with a cup of coffee. Sunlight slips in through the window. Today feels light. #coffee #morning #slowliving #cozy #weekend

[CAPTION] Sudut favorit untuk memulai hari. Tidak perlu buru-buru. Nikmati saja prosesnya. #sudutfavorit #kopi #pagihari #mindful #rutinitas
My favorite corner to start the day. No need to rush. Just enjoy the process. #favoritespot #coffee #morningvibes #mindful #routine

[CAPTION] Kopi pertama selalu yang terbaik. Aroma yang mengisi ruangan. Semangat untuk hari ini. #kopipertama #aroma #semangat #pagi #kopilovers
The first coffee is always the best. A smell that fills the room. Ready for today. #firstcoffee #aroma #goodvibes #morning #coffeelover`

const mockImprovement = `[VERSION 1 - More Engaging]
[CAPTION] Siapa yang juga butuh kopi pagi ini? Cahaya pagi dan secangkir hangat. #kopi #pagi #ngopi #santai #slowliving
Who else needs coffee this morning? Morning light and a warm cup. #coffee #morning #cozy #slowliving #weekend

[VERSION 2 - Shorter]
[CAPTION] Kopi, cahaya pagi, tenang. Cukup. #kopi #pagi #tenang #minimalis #slowliving
Coffee, morning light, calm. Enough. #coffee #morning #calm #minimal #slowliving

[VERSION 3 - Storytelling]
[CAPTION] Jam tujuh pagi, rumah masih sepi. Kopi ini jadi teman pertama hari ini. #ceritapagi #kopi #rumah #pagi #slowliving
Seven in the morning, the house still quiet. This coffee is my first company today. #morningstory #coffee #home #morning #slowliving`

// MockProvider returns canned replies that follow the caption output format.
// It backs the offline demo and tests that need a working provider.
type MockProvider struct {
	mu       sync.Mutex
	requests []*CompletionRequest

	// Reply, when set, overrides the canned text.
	Reply string
	Err   error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MockProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	reply, err := m.Reply, m.Err
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if reply == "" {
		reply = mockGeneration
		if isImprovement(req) {
			reply = mockImprovement
		}
	}

	return &CompletionResponse{
		Content:      reply,
		Model:        "mock",
		FinishReason: "stop",
	}, nil
}

// Requests returns the requests received so far.
func (m *MockProvider) Requests() []*CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*CompletionRequest(nil), m.requests...)
}

func isImprovement(req *CompletionRequest) bool {
	for _, msg := range req.Messages {
		if msg.Role == "user" && strings.Contains(msg.Content, "[VERSION") {
			return true
		}
	}
	return false
}
