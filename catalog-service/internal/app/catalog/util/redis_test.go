package util

import (
	"context"
	"testing"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RedisClientTestSuite тестовый suite для кеша брендов
type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client, err = NewRedisClient(s.miniRedis.Addr(), "", 0)
	require.NoError(s.T(), err)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisClientTestSuite) TestSetAndGetBrands() {
	ctx := context.Background()

	brands := []entity.Brand{
		{ID: uuid.New(), Name: "Mavesa"},
		{ID: uuid.New(), Name: "Polar"},
	}

	err := s.client.SetBrands(ctx, brands, time.Hour)
	s.NoError(err)

	cached, err := s.client.GetBrands(ctx)
	s.NoError(err)
	s.Len(cached, 2)
	s.Equal("Mavesa", cached[0].Name)
	s.Equal(brands[0].ID, cached[0].ID)
}

func (s *RedisClientTestSuite) TestGetBrands_Miss() {
	ctx := context.Background()

	// Промах кеша - nil без ошибки
	cached, err := s.client.GetBrands(ctx)
	s.NoError(err)
	s.Nil(cached)
}

func (s *RedisClientTestSuite) TestDeleteBrands() {
	ctx := context.Background()

	brands := []entity.Brand{{ID: uuid.New(), Name: "Mavesa"}}
	s.NoError(s.client.SetBrands(ctx, brands, time.Hour))

	s.NoError(s.client.DeleteBrands(ctx))

	cached, err := s.client.GetBrands(ctx)
	s.NoError(err)
	s.Nil(cached)
}

func (s *RedisClientTestSuite) TestSetBrands_TTLExpires() {
	ctx := context.Background()

	brands := []entity.Brand{{ID: uuid.New(), Name: "Mavesa"}}
	s.NoError(s.client.SetBrands(ctx, brands, time.Minute))

	// miniredis позволяет промотать время вперед
	s.miniRedis.FastForward(2 * time.Minute)

	cached, err := s.client.GetBrands(ctx)
	s.NoError(err)
	s.Nil(cached)
}
