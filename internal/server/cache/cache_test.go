package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/gameauth/internal/logging"
	"github.com/dmitrijs2005/gameauth/internal/server/models"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type ViewCacheSuite struct {
	suite.Suite
	mini   *miniredis.Miniredis
	client *goredis.Client
	cache  *ViewCache[models.ProfileView]
	ctx    context.Context
}

func TestViewCacheSuite(t *testing.T) {
	suite.Run(t, new(ViewCacheSuite))
}

func (s *ViewCacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})
	s.cache = NewViewCache[models.ProfileView](s.client, time.Minute, logging.Nop{})
	s.ctx = context.Background()
}

func (s *ViewCacheSuite) TearDownTest() {
	_ = s.client.Close()
	s.mini.Close()
}

func (s *ViewCacheSuite) TestSetThenGet() {
	p := &models.ProfileView{ID: 1, UserName: "alice", Balance: 1000, Kills: 3}

	s.cache.Set(s.ctx, "profile:1", p)

	got, ok := s.cache.Get(s.ctx, "profile:1")
	s.Require().True(ok)
	s.Equal(*p, *got)
}

func (s *ViewCacheSuite) TestMiss() {
	got, ok := s.cache.Get(s.ctx, "profile:missing")
	s.False(ok)
	s.Nil(got)
}

func (s *ViewCacheSuite) TestEntriesExpire() {
	s.cache.Set(s.ctx, "profile:1", &models.ProfileView{ID: 1})
	s.Equal(time.Minute, s.mini.TTL("profile:1"))

	s.mini.FastForward(2 * time.Minute)

	_, ok := s.cache.Get(s.ctx, "profile:1")
	s.False(ok)
}

func (s *ViewCacheSuite) TestUndecodableEntryIsAMiss() {
	s.Require().NoError(s.mini.Set("profile:1", "not json"))

	_, ok := s.cache.Get(s.ctx, "profile:1")
	s.False(ok)
}

func (s *ViewCacheSuite) TestRedisDownIsAMiss() {
	s.mini.Close()

	s.cache.Set(s.ctx, "profile:1", &models.ProfileView{ID: 1})
	_, ok := s.cache.Get(s.ctx, "profile:1")
	s.False(ok)
}

func TestNop(t *testing.T) {
	var c Cache[models.ProfileView] = Nop[models.ProfileView]{}
	c.Set(context.Background(), "k", &models.ProfileView{ID: 1})
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatal("Nop cache must always miss")
	}
}
