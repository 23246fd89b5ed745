package usecase

import (
	"context"
	"sync"

	"chat-relay/internal/chat/repository"
	"chat-relay/pkg/llmprovider"
	"chat-relay/pkg/log"
)

// completionClient is the slice of llmprovider.Manager the usecase needs.
type completionClient interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config holds generation parameters applied to every completion call.
type Config struct {
	Temperature     float64
	MaxOutputTokens int
}

// implUseCase is the private implementation of chat.UseCase.
type implUseCase struct {
	l     log.Logger
	llm   completionClient
	repo  repository.Repository
	cfg   Config
	locks *keyedMutex
}

// New creates a new chat UseCase implementation.
func New(l log.Logger, llm completionClient, repo repository.Repository, cfg Config) *implUseCase {
	return &implUseCase{
		l:     l,
		llm:   llm,
		repo:  repo,
		cfg:   cfg,
		locks: newKeyedMutex(),
	}
}

// keyedMutex serializes work per conversation ID so two concurrent
// consolidations on the same conversation cannot interleave load/append/save
// and silently drop each other's turns.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
