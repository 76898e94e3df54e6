package qrcode

import (
	"github.com/Varun5711/link2qr/internal/cache"
	"github.com/Varun5711/link2qr/internal/logger"
)

// CachingService memoizes successful generations by text. Failures are not
// cached. Safe because a Service's output depends only on the text.
type CachingService struct {
	next  Service
	cache *cache.LRU[string, *Artifact]
	log   *logger.Logger
}

func NewCachingService(next Service, capacity int, log *logger.Logger) *CachingService {
	return &CachingService{
		next:  next,
		cache: cache.NewLRU[string, *Artifact](capacity),
		log:   log,
	}
}

func (s *CachingService) Generate(text string) (*Artifact, error) {
	if a, ok := s.cache.Get(text); ok {
		s.log.Debug("cache hit for %d-byte input (artifact %s)", len(text), a.ID)
		return a, nil
	}

	a, err := s.next.Generate(text)
	if err != nil {
		return nil, err
	}

	s.cache.Set(text, a)
	return a, nil
}

func (s *CachingService) Len() int {
	return s.cache.Len()
}

func (s *CachingService) Stats() (hits, misses uint64) {
	return s.cache.Stats()
}
