package words

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fwhittle/typerace-go/internal/dependencies/mocks"
	"github.com/fwhittle/typerace-go/internal/model"
	"github.com/fwhittle/typerace-go/internal/storage/memory"
	"github.com/fwhittle/typerace-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestGenerateBeforeLoadFails() {
	_, err := s.service.Generate(5)
	s.ErrorIs(err, model.ErrWordsNotLoaded)
}

func (s *ServiceSuite) TestGenerateAppendsSpaceAfterEachWord() {
	s.Require().NoError(s.service.LoadWords([]string{"cat", "dog", "bird"}))
	s.random.QueueIntn(0, 2, 1)

	chars, err := s.service.Generate(3)
	s.Require().NoError(err)
	s.Equal("cat bird dog ", chars)
}

func (s *ServiceSuite) TestGenerateZeroWords() {
	s.Require().NoError(s.service.LoadWords([]string{"cat"}))

	chars, err := s.service.Generate(0)
	s.Require().NoError(err)
	s.Equal("", chars)
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("cat\ndog\n\n  bird  \n"), 0644))

	err := s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(3, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromFileSavesToStorage() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("cat\ndog\n"), 0644))

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	saved, err := s.storage.GetWordList(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"cat", "dog"}, saved)
}

func (s *ServiceSuite) TestLoadFromFileMissing() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "nope.txt"))
	s.Error(err)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveWordList(s.ctx, []string{"cat", "dog"}))

	err := s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)
	s.True(s.service.IsLoaded())
	s.Equal(2, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromStorageEmpty() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrWordsNotLoaded)
}
