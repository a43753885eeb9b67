// Package controller exposes the game service over HTTP and websocket.
package controller

import (
	stderrors "errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/simplechess/simplechess-go/internal/dto"
	"github.com/simplechess/simplechess-go/internal/errors"
	"github.com/simplechess/simplechess-go/internal/service"
)

// GameController handles the REST surface.
type GameController struct {
	games  *service.GameService
	logger *zap.Logger
}

// NewGameController builds a controller over the game service.
func NewGameController(games *service.GameService, logger *zap.Logger) *GameController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameController{games: games, logger: logger}
}

// Register mounts the game routes under the given router group.
func (gc *GameController) Register(api fiber.Router) {
	games := api.Group("/game")
	games.Post("/", gc.CreateGame)
	games.Get("/:id", gc.GetGame)
	games.Get("/:id/fen", gc.GetFEN)
	games.Get("/:id/moves", gc.GetLegalMoves)
	games.Get("/:id/history", gc.GetHistory)
	games.Get("/:id/history/:index", gc.GetStage)
	games.Post("/:id/move", gc.MakeMove)
	games.Post("/:id/claim-draw", gc.ClaimDraw)
	games.Post("/:id/resign", gc.Resign)

	api.Get("/perft", gc.Perft)
}

// CreateGame starts a new game, optionally from a FEN in the body.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req dto.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "malformed request body")
		}
	}

	id, err := gc.games.CreateGame(req.FEN)
	if err != nil {
		return gc.fail(c, err)
	}
	state, err := gc.games.GetGame(id)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

// GetGame returns the current snapshot of a game.
func (gc *GameController) GetGame(c *fiber.Ctx) error {
	state, err := gc.games.GetGame(c.Params("id"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

// GetFEN returns the current position as a bare FEN record.
func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	fen, err := gc.games.FEN(c.Params("id"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{"fen": fen})
}

// GetLegalMoves lists legal moves, filtered by the optional square query
// parameter.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	moves, err := gc.games.LegalMoves(c.Params("id"), c.Query("square"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(moves)
}

// GetHistory returns the full stage history.
func (gc *GameController) GetHistory(c *fiber.Ctx) error {
	history, err := gc.games.History(c.Params("id"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(history)
}

// GetStage returns one history entry.
func (gc *GameController) GetStage(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "index must be an integer")
	}
	entry, err := gc.games.StageAt(c.Params("id"), index)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(entry)
}

// MakeMove plays a move given by coordinates.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req dto.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed request body")
	}
	state, err := gc.games.MakeMove(c.Params("id"), req)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

// ClaimDraw claims the available draw.
func (gc *GameController) ClaimDraw(c *fiber.Ctx) error {
	state, err := gc.games.ClaimDraw(c.Params("id"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

// Resign resigns for the player to move.
func (gc *GameController) Resign(c *fiber.Ctx) error {
	state, err := gc.games.Resign(c.Params("id"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

// Perft counts move-tree nodes for the fen and depth query parameters.
func (gc *GameController) Perft(c *fiber.Ctx) error {
	depth, err := strconv.Atoi(c.Query("depth", "1"))
	if err != nil {
		return badRequest(c, "depth must be an integer")
	}
	resp, err := gc.games.Perft(c.Query("fen"), depth)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(resp)
}

// fail maps the error taxonomy onto HTTP statuses: unknown games are 404,
// invalid arguments 400, illegal state transitions 409.
func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case stderrors.Is(err, errors.ErrGameNotFound):
		status = fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case stderrors.Is(err, errors.ErrIllegalState):
		status = fiber.StatusConflict
	default:
		gc.logger.Error("unclassified error", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
