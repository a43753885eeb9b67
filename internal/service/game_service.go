// Package service holds the in-memory game registry and the operations the
// transport layer exposes. Games themselves are immutable values; the
// registry swaps the stored pointer under a lock on every operation, so
// concurrent readers always see a consistent game.
package service

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/dto"
	"github.com/simplechess/simplechess-go/internal/engine"
	"github.com/simplechess/simplechess-go/internal/errors"
	"github.com/simplechess/simplechess-go/internal/game"
	wsmsg "github.com/simplechess/simplechess-go/internal/ws"
)

// jsonWriter is the single method of *websocket.Conn the service writes
// through, split out so tests can stand in for a live connection.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// Peer is a subscribed websocket connection. All frames to the connection
// go through WriteMessage, whose mutex keeps the service's notifications
// and the controller's replies from interleaving on the wire.
type Peer struct {
	mu   sync.Mutex
	conn jsonWriter
}

// WriteMessage sends one message frame, serialized per connection.
func (p *Peer) WriteMessage(msg wsmsg.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(msg)
}

// GameService is the uuid-keyed registry of running games plus the
// websocket subscribers watching them.
type GameService struct {
	mu           sync.RWMutex
	games        map[string]*game.Game
	watchers     map[string]map[*Peer]struct{}
	maxGames     int
	perftWorkers int
	logger       *zap.Logger
}

// NewGameService builds an empty registry.
func NewGameService(maxGames, perftWorkers int, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		games:        make(map[string]*game.Game),
		watchers:     make(map[string]map[*Peer]struct{}),
		maxGames:     maxGames,
		perftWorkers: perftWorkers,
		logger:       logger,
	}
}

// CreateGame registers a new game and returns its identifier. A non-empty
// fen starts the game from that position instead of the standard one.
func (s *GameService) CreateGame(fen string) (string, error) {
	var g *game.Game
	if fen == "" {
		g = game.New()
	} else {
		parsed, err := game.FromFEN(fen)
		if err != nil {
			return "", err
		}
		g = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.games) >= s.maxGames {
		return "", errors.Wrapf(errors.ErrIllegalState, "game limit %d reached", s.maxGames)
	}
	id := uuid.New().String()
	s.games[id] = g
	s.logger.Info("game created", zap.String("game_id", id), zap.String("fen", g.CurrentStage().FEN()))
	return id, nil
}

// GetGame returns the current snapshot of a game.
func (s *GameService) GetGame(id string) (dto.GameState, error) {
	g, err := s.lookup(id)
	if err != nil {
		return dto.GameState{}, err
	}
	return dto.FromGame(id, g), nil
}

// FEN returns the current position of a game as a FEN record.
func (s *GameService) FEN(id string) (string, error) {
	g, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	return g.CurrentStage().FEN(), nil
}

// LegalMoves lists the legal moves of a game, restricted to one origin
// square when from is non-empty.
func (s *GameService) LegalMoves(id, from string) (dto.LegalMovesResponse, error) {
	g, err := s.lookup(id)
	if err != nil {
		return dto.LegalMovesResponse{}, err
	}

	var moves []chess.PieceMove
	if from == "" {
		moves = g.LegalMoves()
	} else {
		sq, err := chess.ParseSquare(from)
		if err != nil {
			return dto.LegalMovesResponse{}, err
		}
		moves = g.LegalMovesFrom(sq)
	}

	resp := dto.LegalMovesResponse{Moves: make([]dto.Move, len(moves))}
	for i, move := range moves {
		resp.Moves[i] = dto.FromPieceMove(move)
	}
	return resp, nil
}

// MakeMove plays a move on a game and returns the new snapshot. Watchers of
// the game are notified.
func (s *GameService) MakeMove(id string, req dto.MoveRequest) (dto.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return dto.GameState{}, errors.Wrap(errors.ErrGameNotFound, id)
	}
	if g.State() != game.Ongoing {
		return dto.GameState{}, errors.Wrapf(errors.ErrGameOver, "state is %s", g.State())
	}
	move, err := resolveMove(g, req)
	if err != nil {
		return dto.GameState{}, err
	}
	next, err := g.MakeMove(move, req.OfferDraw)
	if err != nil {
		return dto.GameState{}, err
	}

	s.games[id] = next
	s.logger.Info("move played",
		zap.String("game_id", id),
		zap.String("san", next.CurrentStage().Played.SAN),
		zap.String("state", next.State().String()))

	state := dto.FromGame(id, next)
	s.notifyLocked(id, state)
	return state, nil
}

// ClaimDraw claims the draw available to the player to move.
func (s *GameService) ClaimDraw(id string) (dto.GameState, error) {
	return s.transition(id, func(g *game.Game) (*game.Game, error) {
		return g.ClaimDraw()
	})
}

// Resign resigns the game for the player to move. The surface carries no
// player identity, so the side to move is the only resigner it can act for.
func (s *GameService) Resign(id string) (dto.GameState, error) {
	return s.transition(id, func(g *game.Game) (*game.Game, error) {
		return g.Resign(g.ActiveColor())
	})
}

// History returns the full stage history of a game.
func (s *GameService) History(id string) ([]dto.HistoryEntry, error) {
	g, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return dto.FromHistory(g.History()), nil
}

// StageAt returns one history entry by index.
func (s *GameService) StageAt(id string, index int) (dto.HistoryEntry, error) {
	g, err := s.lookup(id)
	if err != nil {
		return dto.HistoryEntry{}, err
	}
	stage, err := g.StageAt(index)
	if err != nil {
		return dto.HistoryEntry{}, err
	}
	return dto.HistoryEntry{Index: index, FEN: stage.FEN(), Move: dto.FromPlayedMove(stage.Played)}, nil
}

// Perft counts move-tree nodes for an arbitrary position, fanning the work
// across the configured number of workers.
func (s *GameService) Perft(fen string, depth int) (dto.PerftResponse, error) {
	if depth < 0 || depth > 6 {
		return dto.PerftResponse{}, errors.Wrapf(errors.ErrInvalidArgument, "depth %d out of range", depth)
	}
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		return dto.PerftResponse{}, err
	}
	nodes := engine.ParallelPerft(pos, depth, s.perftWorkers)
	return dto.PerftResponse{FEN: fen, Depth: depth, Nodes: nodes}, nil
}

// Watch subscribes a websocket connection to a game's updates. The caller
// must route its own writes through the returned peer.
func (s *GameService) Watch(id string, conn *websocket.Conn) (*Peer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, errors.Wrap(errors.ErrGameNotFound, id)
	}
	if s.watchers[id] == nil {
		s.watchers[id] = make(map[*Peer]struct{})
	}
	peer := &Peer{conn: conn}
	s.watchers[id][peer] = struct{}{}
	return peer, nil
}

// Unwatch removes a peer from a game's watcher set.
func (s *GameService) Unwatch(id string, peer *Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watchers[id], peer)
	if len(s.watchers[id]) == 0 {
		delete(s.watchers, id)
	}
}

// transition applies a game-level operation under the lock, stores the
// successor and notifies watchers.
func (s *GameService) transition(id string, op func(*game.Game) (*game.Game, error)) (dto.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return dto.GameState{}, errors.Wrap(errors.ErrGameNotFound, id)
	}
	next, err := op(g)
	if err != nil {
		return dto.GameState{}, err
	}

	s.games[id] = next
	s.logger.Info("game state changed",
		zap.String("game_id", id),
		zap.String("state", next.State().String()))

	state := dto.FromGame(id, next)
	s.notifyLocked(id, state)
	return state, nil
}

// notifyLocked pushes the new snapshot to every watcher. Callers hold the
// registry write lock; the peers' own mutexes guard the connections.
func (s *GameService) notifyLocked(id string, state dto.GameState) {
	msg := wsmsg.Message{Type: wsmsg.MessageTypeGameState, Payload: mustJSON(state)}
	for peer := range s.watchers[id] {
		if err := peer.WriteMessage(msg); err != nil {
			s.logger.Warn("dropping unreachable watcher",
				zap.String("game_id", id), zap.Error(err))
			delete(s.watchers[id], peer)
		}
	}
}

// mustJSON marshals a value that is known to be marshalable.
func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func (s *GameService) lookup(id string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, errors.Wrap(errors.ErrGameNotFound, id)
	}
	return g, nil
}

// resolveMove turns a coordinate request into the matching legal move, so
// the caller never has to construct piece values.
func resolveMove(g *game.Game, req dto.MoveRequest) (chess.PieceMove, error) {
	from, err := chess.ParseSquare(req.From)
	if err != nil {
		return chess.PieceMove{}, err
	}
	to, err := chess.ParseSquare(req.To)
	if err != nil {
		return chess.PieceMove{}, err
	}
	promotion, err := parsePromotion(req.Promotion)
	if err != nil {
		return chess.PieceMove{}, err
	}

	// Resolve against the position rather than the game, so a move sent to
	// a finished game still fails with the game-over error downstream.
	for _, move := range engine.LegalMovesFrom(g.CurrentPosition(), from) {
		if move.To != to {
			continue
		}
		if move.IsPromotion {
			if req.Promotion != "" && move.Promotion == promotion {
				return move, nil
			}
			continue
		}
		if req.Promotion == "" {
			return move, nil
		}
	}
	return chess.PieceMove{}, errors.Wrapf(errors.ErrIllegalMove, "%s%s%s", req.From, req.To, req.Promotion)
}

func parsePromotion(letter string) (chess.PieceType, error) {
	switch letter {
	case "":
		return chess.Pawn, nil
	case "q":
		return chess.Queen, nil
	case "r":
		return chess.Rook, nil
	case "b":
		return chess.Bishop, nil
	case "n":
		return chess.Knight, nil
	default:
		return chess.Pawn, errors.Wrapf(errors.ErrInvalidPromotion, "letter %q", letter)
	}
}
