package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/event"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/inventory"
	"github.com/samdwyer/dungeoncrawl/internal/movement"
	"github.com/samdwyer/dungeoncrawl/internal/progression"
	"github.com/samdwyer/dungeoncrawl/internal/random"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const (
	// StartHealth is the max health of a new player.
	StartHealth = 20
	// MaxNameLength bounds display names, in runes.
	MaxNameLength = 32
)

// Service runs turns against saves in a Store.
type Service struct {
	store  storage.Store
	tables *gamedata.Tables
	rng    random.Source
	now    func() time.Time
	newID  func() string
	locks  *keyedMutex

	moves  *movement.Resolver
	combat *combat.Engine
	items  *inventory.Manager
}

// NewService wires a service over store. Without options it uses the
// embedded tables and a crypto-seeded random source.
func NewService(store storage.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{
		store: store,
		now:   time.Now,
		newID: defaultID,
		locks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.tables == nil {
		tables, err := gamedata.LoadTables()
		if err != nil {
			return nil, fmt.Errorf("load game data: %w", err)
		}
		s.tables = tables
	}
	if s.rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, err
		}
		s.rng = random.NewLocked(seed)
	}

	s.moves = movement.NewResolver(event.NewResolver(s.tables, s.rng))
	s.combat = combat.NewEngine(s.tables, s.rng)
	s.items = inventory.NewManager(s.tables.Items, s.rng)
	return s, nil
}

// Tables returns the game data the service plays with.
func (s *Service) Tables() *gamedata.Tables {
	return s.tables
}

// Items returns the item manager, for clients that pick items for the player.
func (s *Service) Items() *inventory.Manager {
	return s.items
}

// CreateRequest holds the optional arguments of Create.
type CreateRequest struct {
	Name        string
	DungeonSize *int
}

// Create starts a new save in the Exploring state at the entrance.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Snapshot, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.start_game")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) > MaxNameLength {
		return Snapshot{}, fail(span, apperrors.InvalidInput("name must be at most %d characters", MaxNameLength))
	}
	if name == "" {
		name = fmt.Sprintf("Adventurer_%d", random.Between(s.rng, 1000, 9999))
	}

	dungeon, err := world.Generate(ctx, s.rng, req.DungeonSize)
	if err != nil {
		return Snapshot{}, fail(span, err)
	}

	p := &entity.Player{
		ID:        s.newID(),
		Name:      name,
		Level:     1,
		Health:    StartHealth,
		MaxHealth: StartHealth,
		Position:  world.Entrance,
		Inventory: entity.Inventory{},
		Dungeon:   dungeon,
		CreatedAt: s.now().UTC(),
	}
	if err := s.persist(ctx, p); err != nil {
		return Snapshot{}, fail(span, err)
	}

	span.SetAttributes(
		attribute.String("save_id", p.ID),
		attribute.Int("dungeon.size", dungeon.Size),
	)
	return snapshot(p), nil
}

// Move walks one room in the direction named by token.
func (s *Service) Move(ctx context.Context, id, token string) (MoveOutcome, error) {
	dir, err := world.ParseDirection(token)
	if err != nil {
		return MoveOutcome{}, err
	}
	return turn(ctx, s, id, "move", func(ctx context.Context, p *entity.Player) (MoveOutcome, error) {
		res, err := s.moves.Move(ctx, p, dir)
		if err != nil {
			return MoveOutcome{}, err
		}
		out := MoveOutcome{
			Moved:          res.Moved,
			Event:          res.Event,
			Position:       res.Position,
			AvailableMoves: res.AvailableMoves,
			Health:         p.Health,
			State:          StateOf(p),
			Monster:        monsterView(p.Monster),
		}
		if res.Outcome != nil {
			out.EventKind = string(res.Outcome.Kind)
			out.Boss = res.Outcome.Kind == event.KindBoss
		}
		return out, nil
	})
}

// Fight resolves one combat action named by token.
func (s *Service) Fight(ctx context.Context, id, token string) (FightOutcome, error) {
	action, err := combat.ParseAction(token)
	if err != nil {
		return FightOutcome{}, err
	}
	return turn(ctx, s, id, "fight", func(ctx context.Context, p *entity.Player) (FightOutcome, error) {
		res, err := s.combat.Resolve(ctx, p, action)
		if err != nil {
			return FightOutcome{}, err
		}
		return fightOutcome(p, res), nil
	})
}

// UseItem consumes one owned consumable. Using an item in battle does not
// give the monster a turn.
func (s *Service) UseItem(ctx context.Context, id, item string) (UseOutcome, error) {
	return turn(ctx, s, id, "use_item", func(ctx context.Context, p *entity.Player) (UseOutcome, error) {
		res, err := s.items.Use(p, item)
		if err != nil {
			return UseOutcome{}, err
		}
		return UseOutcome{UseResult: res, State: StateOf(p)}, nil
	})
}

// Equip makes an owned weapon the active one.
func (s *Service) Equip(ctx context.Context, id, item string) (EquipOutcome, error) {
	return turn(ctx, s, id, "equip", func(ctx context.Context, p *entity.Player) (EquipOutcome, error) {
		res, err := s.items.Equip(p, item)
		if err != nil {
			return EquipOutcome{}, err
		}
		return EquipOutcome{EquipResult: res, State: StateOf(p)}, nil
	})
}

// Respawn returns a dead player to the entrance at full health, minus the
// experience penalty.
func (s *Service) Respawn(ctx context.Context, id string) (RespawnOutcome, error) {
	return turn(ctx, s, id, "respawn", func(ctx context.Context, p *entity.Player) (RespawnOutcome, error) {
		if !p.IsDead() {
			return RespawnOutcome{}, apperrors.Domain("player is not dead")
		}
		lost := progression.Penalize(p)
		p.Health = p.MaxHealth
		p.Position = world.Entrance
		p.Monster = nil

		return RespawnOutcome{
			Message:    "Respawned at entrance",
			Health:     p.Health,
			MaxHealth:  p.MaxHealth,
			Experience: p.Experience,
			ExpLost:    lost,
			Position:   p.Position,
			State:      StateOf(p),
		}, nil
	})
}

// Status returns the save without changing it.
func (s *Service) Status(ctx context.Context, id string) (Snapshot, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.status")
	defer span.End()
	span.SetAttributes(attribute.String("save_id", id))

	p, err := s.load(ctx, id)
	if err != nil {
		return Snapshot{}, fail(span, err)
	}
	return snapshot(p), nil
}

// RenderMap draws the dungeon as seen by the player.
func (s *Service) RenderMap(ctx context.Context, id string) (string, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.render_map")
	defer span.End()
	span.SetAttributes(attribute.String("save_id", id))

	p, err := s.load(ctx, id)
	if err != nil {
		return "", fail(span, err)
	}
	return p.Dungeon.Render(p.Position), nil
}

// Leaderboard lists the top players by level then experience.
func (s *Service) Leaderboard(ctx context.Context) ([]storage.Leader, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.leaderboard")
	defer span.End()

	leaders, err := s.store.Leaderboard(ctx, storage.DefaultLeaderboardLimit)
	if err != nil {
		return nil, fail(span, apperrors.Wrap(apperrors.CodeInternal, "load leaderboard", err))
	}
	return leaders, nil
}

// turn runs apply against the save for id while holding its lock. The save
// is only written when apply succeeds.
func turn[T any](ctx context.Context, s *Service, id, action string, apply func(context.Context, *entity.Player) (T, error)) (T, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game."+action)
	defer span.End()
	span.SetAttributes(
		attribute.String("save_id", id),
		attribute.String("action", action),
	)

	var zero T
	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		return zero, fail(span, err)
	}
	before := StateOf(p)

	out, err := apply(ctx, p)
	if err != nil {
		return zero, fail(span, err)
	}
	if err := s.persist(ctx, p); err != nil {
		return zero, fail(span, err)
	}

	span.SetAttributes(
		attribute.String("outcome", fmt.Sprintf("%s->%s", before, StateOf(p))),
		attribute.Int("player.level", p.Level),
		attribute.Int("player.health", p.Health),
	)
	return out, nil
}

func (s *Service) load(ctx context.Context, id string) (*entity.Player, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.InvalidInput("player_id required")
	}
	p, err := s.store.Load(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.NotFound("player not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "load player", err)
	}
	return &p, nil
}

func (s *Service) persist(ctx context.Context, p *entity.Player) error {
	if err := p.Validate(); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "turn produced an invalid player", err)
	}
	if err := s.store.Save(ctx, *p); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "save player", err)
	}
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	return err
}
