package postgres_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nldi-service/internal/domain"
	domainrepo "github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/repository/postgres"
	"github.com/nldi-service/internal/repository/postgres/testhelpers"
)

type FlowlineRepositorySuite struct {
	suite.Suite
	tdb  *testhelpers.TestDB
	repo domainrepo.FlowlineRepository
}

func (s *FlowlineRepositorySuite) SetupSuite() {
	s.tdb = testhelpers.SetupTestDB(s.T())
	testhelpers.ApplySchema(s.T(), s.tdb)
	s.repo = postgres.NewFlowlineRepository(testhelpers.NewDB(s.T(), s.tdb))
}

func (s *FlowlineRepositorySuite) SetupTest() {
	testhelpers.LoadFixtures(s.T(), s.tdb)
}

func (s *FlowlineRepositorySuite) TestGetByComid() {
	fl, err := s.repo.GetByComid(context.Background(), testhelpers.LowerComid)
	s.Require().NoError(err)

	s.Equal(testhelpers.LowerComid, fl.Comid)
	s.Equal("07090002007373", fl.Reachcode)
	s.InDelta(0, fl.Fmeasure, 1e-9)
	s.InDelta(100, fl.Tmeasure, 1e-9)

	var geom struct {
		Type string `json:"type"`
	}
	s.Require().NoError(json.Unmarshal(fl.Geometry, &geom))
	s.Equal("LineString", geom.Type)
}

func (s *FlowlineRepositorySuite) TestGetByComidNotFound() {
	_, err := s.repo.GetByComid(context.Background(), 99999999)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *FlowlineRepositorySuite) TestListByNavigationKeepsOrder() {
	comids := domain.NavResult{testhelpers.UpperComid, testhelpers.LowerComid}

	flowlines, err := s.repo.ListByNavigation(context.Background(), comids, domainrepo.FlowlineQuery{})
	s.Require().NoError(err)
	s.Require().Len(flowlines, 2)
	s.Equal(testhelpers.UpperComid, flowlines[0].Comid)
	s.Equal(testhelpers.LowerComid, flowlines[1].Comid)
}

func (s *FlowlineRepositorySuite) TestListByNavigationEmpty() {
	flowlines, err := s.repo.ListByNavigation(context.Background(), nil, domainrepo.FlowlineQuery{})
	s.Require().NoError(err)
	s.Empty(flowlines)
}

func (s *FlowlineRepositorySuite) TestListByNavigationExcludesGeometry() {
	flowlines, err := s.repo.ListByNavigation(context.Background(),
		domain.NavResult{testhelpers.LowerComid},
		domainrepo.FlowlineQuery{ExcludeGeometry: true})
	s.Require().NoError(err)
	s.Require().Len(flowlines, 1)
	s.Empty(flowlines[0].Geometry)
}

func (s *FlowlineRepositorySuite) TestListByNavigationTrimsStartReach() {
	// Upstream clip at measure 50 keeps the downstream-to-midpoint half of
	// the lower flowline, so the clipped line tops out at latitude 0.5.
	flowlines, err := s.repo.ListByNavigation(context.Background(),
		domain.NavResult{testhelpers.LowerComid},
		domainrepo.FlowlineQuery{Trims: []domainrepo.FlowlineTrim{
			{Comid: testhelpers.LowerComid, Measure: 50, Upstream: true, Tolerance: 0},
		}})
	s.Require().NoError(err)
	s.Require().Len(flowlines, 1)

	var geom struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	}
	s.Require().NoError(json.Unmarshal(flowlines[0].Geometry, &geom))
	s.Equal("LineString", geom.Type)
	s.Require().NotEmpty(geom.Coordinates)

	maxLat := geom.Coordinates[0][1]
	for _, coord := range geom.Coordinates {
		if coord[1] > maxLat {
			maxLat = coord[1]
		}
	}
	s.InDelta(0.5, maxLat, 1e-6)
}

func (s *FlowlineRepositorySuite) TestMeasureAtPoint() {
	measure, reachcode, err := s.repo.MeasureAtPoint(context.Background(),
		testhelpers.LowerComid, 0.0005, 0.5)
	s.Require().NoError(err)
	s.InDelta(50, measure, 0.1)
	s.Equal("07090002007373", reachcode)
}

func (s *FlowlineRepositorySuite) TestEstimateMeasure() {
	// The water quality site sits a quarter of the way up the upper
	// flowline, so the estimated measure lands near 75.
	measure, err := s.repo.EstimateMeasure(context.Background(),
		testhelpers.WQPSourceID, testhelpers.WQPIdentifier)
	s.Require().NoError(err)
	s.InDelta(75, measure, 0.1)
}

func (s *FlowlineRepositorySuite) TestPointAtMeasure() {
	lon, lat, err := s.repo.PointAtMeasure(context.Background(),
		testhelpers.NWISSourceID, testhelpers.GageIdentifier)
	s.Require().NoError(err)
	s.InDelta(0, lon, 1e-6)
	s.InDelta(0.5, lat, 1e-6)
}

func (s *FlowlineRepositorySuite) TestPointAtMeasureWithoutMeasure() {
	_, _, err := s.repo.PointAtMeasure(context.Background(),
		testhelpers.WQPSourceID, testhelpers.WQPIdentifier)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *FlowlineRepositorySuite) TestDistanceFromFlowline() {
	// The gage sits 0.0005 degrees of longitude off the line, roughly 55
	// meters near the equator.
	distance, err := s.repo.DistanceFromFlowline(context.Background(),
		testhelpers.NWISSourceID, testhelpers.GageIdentifier)
	s.Require().NoError(err)
	s.Greater(distance, 40.0)
	s.Less(distance, 70.0)
}

func (s *FlowlineRepositorySuite) TestClosestPoint() {
	lon, lat, err := s.repo.ClosestPoint(context.Background(),
		testhelpers.NWISSourceID, testhelpers.GageIdentifier)
	s.Require().NoError(err)
	s.InDelta(0, lon, 1e-6)
	s.InDelta(0.5, lat, 1e-6)
}

func TestFlowlineRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlowlineRepositorySuite))
}
