package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nldi-service/internal/domain"
	domainrepo "github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/repository/postgres"
	"github.com/nldi-service/internal/repository/postgres/testhelpers"
)

type SourceRepositorySuite struct {
	suite.Suite
	tdb  *testhelpers.TestDB
	repo domainrepo.CrawlerSourceRepository
}

func (s *SourceRepositorySuite) SetupSuite() {
	s.tdb = testhelpers.SetupTestDB(s.T())
	testhelpers.ApplySchema(s.T(), s.tdb)
	s.repo = postgres.NewCrawlerSourceRepository(testhelpers.NewDB(s.T(), s.tdb))
}

func (s *SourceRepositorySuite) SetupTest() {
	testhelpers.LoadFixtures(s.T(), s.tdb)
}

func (s *SourceRepositorySuite) TestGetBySuffixFoldsCase() {
	for _, suffix := range []string{"wqp", "WQP", "Wqp"} {
		src, err := s.repo.GetBySuffix(context.Background(), suffix)
		s.Require().NoError(err)
		s.Equal(testhelpers.WQPSourceID, src.ID)
		s.Equal("wqp", src.Suffix)
	}
}

func (s *SourceRepositorySuite) TestGetBySuffixNotFound() {
	_, err := s.repo.GetBySuffix(context.Background(), "nosuch")
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *SourceRepositorySuite) TestGetByID() {
	src, err := s.repo.GetByID(context.Background(), testhelpers.NWISSourceID)
	s.Require().NoError(err)
	s.Equal("nwissite", src.Suffix)
	s.Equal(domain.IngestTypeReach, src.IngestType)
	s.Require().NotNil(src.FeatureReach)
	s.Equal("nhdpv2_REACHCODE", *src.FeatureReach)
}

func (s *SourceRepositorySuite) TestListOrdersByID() {
	sources, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(sources, 2)
	s.Equal(testhelpers.WQPSourceID, sources[0].ID)
	s.Equal(testhelpers.NWISSourceID, sources[1].ID)
}

func (s *SourceRepositorySuite) TestUpsertInsertsAndUpdates() {
	ctx := context.Background()

	src := domain.CrawlerSource{
		ID:         3,
		Name:       "huc12 pour points",
		Suffix:     "HUC12PP",
		URI:        "https://example.com/huc12",
		IngestType: domain.IngestTypePoint,
	}
	s.Require().NoError(s.repo.Upsert(ctx, src))

	// Suffix is folded on the way in.
	got, err := s.repo.GetBySuffix(ctx, "huc12pp")
	s.Require().NoError(err)
	s.Equal("huc12pp", got.Suffix)

	src.Name = "HUC12 Pour Points"
	s.Require().NoError(s.repo.Upsert(ctx, src))

	got, err = s.repo.GetByID(ctx, 3)
	s.Require().NoError(err)
	s.Equal("HUC12 Pour Points", got.Name)

	sources, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Len(sources, 3)
}

func TestSourceRepositorySuite(t *testing.T) {
	suite.Run(t, new(SourceRepositorySuite))
}
