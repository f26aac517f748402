package words

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fwhittle/typerace-go/internal/dependencies/random"
	"github.com/fwhittle/typerace-go/internal/model"
	"github.com/fwhittle/typerace-go/internal/storage"
)

// Service provides random challenge text from a fixed word list.
// The list is loaded once at startup and never changes afterwards.
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger

	mu     sync.RWMutex
	words  []string
	loaded bool
}

// New creates a new word source
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger.With(slog.String("component", "words")),
	}
}

// LoadFromStorage loads the word list from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWordList(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads the word list from a file (one word per line)
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Save to storage for future use
	if err := s.storage.SaveWordList(ctx, words); err != nil {
		return err
	}

	s.logger.Info("word list loaded", slog.String("path", path), slog.Int("count", len(words)))
	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make([]string, len(words))
	copy(s.words, words)
	s.loaded = true
	return nil
}

// Generate returns n random words from the list, each followed by a
// single space. Returns an error if no list has been loaded.
func (s *Service) Generate(n int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || len(s.words) == 0 {
		return "", model.ErrWordsNotLoaded
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(s.words[s.random.Intn(len(s.words))])
		b.WriteByte(' ')
	}
	return b.String(), nil
}

// IsLoaded returns whether the word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the list
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
