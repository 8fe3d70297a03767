package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

var _ i.MazeService = &MazeService{}

// MazeService generates mazes, stores them and serves them back.
type MazeService struct {
	repo         i.MazeRepo   // Durable storage
	cache        i.MazeCache  // Encoded copies by id and by seed
	locker       i.Locker     // Serializes generation of one seed across replicas
	logger       i.Logger     // MAZE-SERVICE logger
	maxDimension int          // Largest accepted width or height
	seeder       func() int64 // Seed source for requests without one
}

// Option configures a MazeService.
type Option func(*MazeService)

// WithMaxDimension bounds the accepted width and height.
func WithMaxDimension(n int) Option {
	return func(s *MazeService) {
		if n > 0 {
			s.maxDimension = n
		}
	}
}

// WithSeeder replaces the seed source used when a request carries no seed.
func WithSeeder(fn func() int64) Option {
	return func(s *MazeService) {
		if fn != nil {
			s.seeder = fn
		}
	}
}

// NewMazeService creates a MazeService. Every dependency is required.
func NewMazeService(repo i.MazeRepo, c i.MazeCache, locker i.Locker, logger i.Logger, opts ...Option) (*MazeService, error) {
	if repo == nil || c == nil || locker == nil || logger == nil {
		return nil, errors.New("maze service needs a repo, a cache, a locker and a logger")
	}

	s := &MazeService{
		repo:         repo,
		cache:        c,
		locker:       locker,
		logger:       logger,
		maxDimension: maze.DefaultMaxDimension,
		seeder:       rand.Int63,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate implements i.MazeService.
func (s *MazeService) Generate(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, error) {
	return s.produce(ctx, req, nil)
}

// Stream implements i.MazeService. The events of a known seed are replayed by
// regenerating it, and the stored record is returned.
func (s *MazeService) Stream(ctx context.Context, req dmn.GenerateRequest, fn func(maze.Event)) (*dmn.MazeRecord, error) {
	if fn == nil {
		return nil, fmt.Errorf("stream without an event handler: %w", dmn.ErrInvalidRequest)
	}
	return s.produce(ctx, req, fn)
}

// ByID implements i.MazeService.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	key := idKey(id)
	if record, ok := s.cached(ctx, key); ok {
		return record, nil
	}

	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, key, record)
	return record, nil
}

// Solution implements i.MazeService.
func (s *MazeService) Solution(ctx context.Context, id uuid.UUID) ([]maze.Room, error) {
	record, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.Width > s.maxDimension || record.Height > s.maxDimension {
		s.logger.Error(fmt.Sprintf("Stored maze %s is %dx%d, above %d", id, record.Width, record.Height, s.maxDimension))
		return nil, fmt.Errorf("stored maze %s is too large to solve", id)
	}

	m, err := record.Maze()
	if err != nil {
		s.logger.Error(fmt.Sprintf("Stored maze %s is corrupt: %v", id, err))
		return nil, err
	}
	return m.Solve()
}

// seedKey is the cache and lock key of the maze generated for a size and seed.
func seedKey(width, height int, seed int64) string {
	return fmt.Sprintf("maze:%dx%d:%d", width, height, seed)
}

// idKey is the cache key of a stored maze.
func idKey(id uuid.UUID) string {
	return "maze:id:" + id.String()
}

func (s *MazeService) validate(req dmn.GenerateRequest) error {
	if req.Width < 1 || req.Height < 1 || req.Width > s.maxDimension || req.Height > s.maxDimension {
		return fmt.Errorf("%dx%d outside 1..%d: %w", req.Width, req.Height, s.maxDimension, dmn.ErrInvalidRequest)
	}
	return nil
}

// produce generates the maze for req. Events for observer are buffered and replayed
// once the maze is stored, so a slow observer never holds the seed lock.
func (s *MazeService) produce(ctx context.Context, req dmn.GenerateRequest, observer func(maze.Event)) (*dmn.MazeRecord, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var events []maze.Event
	var collect func(maze.Event)
	if observer != nil {
		collect = func(e maze.Event) { events = append(events, e) }
	}

	var record *dmn.MazeRecord
	var err error
	if req.Seed == nil {
		record, err = s.produceUnseeded(ctx, req.Width, req.Height, collect)
	} else {
		record, err = s.produceSeeded(ctx, req.Width, req.Height, *req.Seed, collect)
	}
	if err != nil {
		return nil, err
	}

	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		observer(e)
	}
	return record, nil
}

func (s *MazeService) produceUnseeded(ctx context.Context, width, height int, observer func(maze.Event)) (*dmn.MazeRecord, error) {
	seed := s.seeder()
	m, err := s.build(width, height, seed, observer)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.persist(ctx, "", dmn.NewMazeRecord(uuid.New(), seed, m))
}

// produceSeeded resolves a seeded request under a lock so that replicas agree on one
// record per size and seed. An existing record is rebuilt only when observed.
func (s *MazeService) produceSeeded(ctx context.Context, width, height int, seed int64, observer func(maze.Event)) (*dmn.MazeRecord, error) {
	key := seedKey(width, height, seed)
	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", key, err)
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warning(fmt.Sprintf("Releasing %s: %v", key, err))
		}
	}()

	existing, err := s.bySeed(ctx, key, width, height, seed)
	if err != nil {
		return nil, err
	}
	if existing != nil && observer == nil {
		return existing, nil
	}

	m, err := s.build(width, height, seed, observer)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.persist(ctx, key, dmn.NewMazeRecord(uuid.New(), seed, m))
}

func (s *MazeService) build(width, height int, seed int64, observer func(maze.Event)) (*maze.Maze, error) {
	opts := []maze.Option{maze.WithSeed(seed), maze.WithMaxDimension(s.maxDimension)}
	if observer != nil {
		opts = append(opts, maze.WithObserver(observer))
	}

	g, err := maze.NewGenerator(width, height, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dmn.ErrInvalidRequest, err)
	}
	m, err := g.Generate()
	if err != nil {
		s.logger.Error(fmt.Sprintf("Generating %dx%d seed %d: %v", width, height, seed, err))
		return nil, err
	}

	stats := m.Stats()
	s.logger.Debug(fmt.Sprintf("Generated %dx%d seed %d: %d walls, %d draws, %d misses, %d rescans, %d recoveries",
		width, height, seed, m.Len(), stats.Draws, stats.Misses, stats.Rescans, stats.Recoveries))
	return m, nil
}

// bySeed finds a maze already generated for the size and seed. It returns nil when
// there is none.
func (s *MazeService) bySeed(ctx context.Context, key string, width, height int, seed int64) (*dmn.MazeRecord, error) {
	if record, ok := s.cached(ctx, key); ok {
		return record, nil
	}

	record, err := s.repo.BySeed(ctx, width, height, seed)
	if errors.Is(err, dmn.ErrMazeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.remember(ctx, key, record)
	return record, nil
}

func (s *MazeService) persist(ctx context.Context, key string, record *dmn.MazeRecord) (*dmn.MazeRecord, error) {
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("Stored maze %s (%dx%d, seed %d)", record.ID, record.Width, record.Height, record.Seed))

	s.remember(ctx, idKey(record.ID), record)
	if key != "" {
		s.remember(ctx, key, record)
	}
	return record, nil
}

// cached reads through the cache. Cache failures are logged and treated as misses.
func (s *MazeService) cached(ctx context.Context, key string) (*dmn.MazeRecord, bool) {
	record, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Reading cache %s: %v", key, err))
		return nil, false
	}
	return record, ok
}

func (s *MazeService) remember(ctx context.Context, key string, record *dmn.MazeRecord) {
	if err := s.cache.Set(ctx, key, record); err != nil {
		s.logger.Warning(fmt.Sprintf("Writing cache %s: %v", key, err))
	}
}
