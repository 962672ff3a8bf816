package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// CommandKind enumerates what a key press asks for.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandQuit
	CommandMove
	CommandAttack
	CommandFlee
	CommandPotion
	CommandEquip
	CommandRespawn
)

// Command is a decoded key press.
type Command struct {
	Kind      CommandKind
	Direction world.Direction
}

// CommandFor maps a key event to a command.
func CommandFor(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: CommandQuit}
	case tcell.KeyUp:
		return move(world.North)
	case tcell.KeyDown:
		return move(world.South)
	case tcell.KeyLeft:
		return move(world.West)
	case tcell.KeyRight:
		return move(world.East)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Command{Kind: CommandQuit}
		case 'k':
			return move(world.North)
		case 'j':
			return move(world.South)
		case 'h':
			return move(world.West)
		case 'l':
			return move(world.East)
		case 'a':
			return Command{Kind: CommandAttack}
		case 'f':
			return Command{Kind: CommandFlee}
		case 'p':
			return Command{Kind: CommandPotion}
		case 'e':
			return Command{Kind: CommandEquip}
		case 'r':
			return Command{Kind: CommandRespawn}
		}
	}
	return Command{Kind: CommandNone}
}

func move(d world.Direction) Command {
	return Command{Kind: CommandMove, Direction: d}
}

// Client drives one save through the game service from the keyboard.
type Client struct {
	svc      *game.Service
	screen   *Screen
	renderer *Renderer
	id       string
	status   game.Snapshot
	message  string
}

// NewClient creates a client for save id drawing on screen.
func NewClient(svc *game.Service, screen *Screen, id string) *Client {
	return &Client{
		svc:      svc,
		screen:   screen,
		renderer: NewRenderer(screen, svc.Tables().Monsters),
		id:       id,
		message:  "You stand at the dungeon entrance.",
	}
}

// Run renders and handles key presses until the player quits, the screen
// closes or ctx is cancelled. Only internal errors end the loop with an error.
func (c *Client) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, c.screen.Close)
	defer stop()

	for {
		if err := c.Draw(ctx); err != nil {
			return err
		}

		switch ev := c.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			c.screen.Sync()
		case *tcell.EventKey:
			cmd := CommandFor(ev)
			if cmd.Kind == CommandQuit {
				return nil
			}
			if err := c.Execute(ctx, cmd); err != nil {
				return err
			}
		}
	}
}

// Draw reloads the save and renders one frame.
func (c *Client) Draw(ctx context.Context) error {
	status, err := c.svc.Status(ctx, c.id)
	if err != nil {
		return err
	}
	grid, err := c.svc.RenderMap(ctx, c.id)
	if err != nil {
		return err
	}
	c.status = status
	c.renderer.Render(View{Status: status, Map: grid, Message: c.message})
	return nil
}

// Message returns the text shown for the last command.
func (c *Client) Message() string {
	return c.message
}

// Execute runs one command as a turn. Input and domain errors become the
// displayed message; internal errors are returned.
func (c *Client) Execute(ctx context.Context, cmd Command) error {
	msg, err := c.execute(ctx, cmd)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeInternal {
			return err
		}
		msg = apperrors.Message(err)
	}
	if msg != "" {
		c.message = msg
	}
	return nil
}

func (c *Client) execute(ctx context.Context, cmd Command) (string, error) {
	switch cmd.Kind {
	case CommandMove:
		out, err := c.svc.Move(ctx, c.id, cmd.Direction.String())
		return out.Event, err
	case CommandAttack:
		out, err := c.svc.Fight(ctx, c.id, combat.ActionAttack.String())
		return out.Message, err
	case CommandFlee:
		out, err := c.svc.Fight(ctx, c.id, combat.ActionFlee.String())
		return out.Message, err
	case CommandPotion:
		item := c.svc.Items().FirstConsumable(c.inventory())
		if item == "" {
			return "You have no potions.", nil
		}
		out, err := c.svc.UseItem(ctx, c.id, item)
		return out.Message, err
	case CommandEquip:
		item := c.svc.Items().BestWeapon(c.inventory())
		if item == "" {
			return "You have no weapon to equip.", nil
		}
		out, err := c.svc.Equip(ctx, c.id, item)
		return out.Message, err
	case CommandRespawn:
		out, err := c.svc.Respawn(ctx, c.id)
		return out.Message, err
	default:
		return "", nil
	}
}

// inventory rebuilds the carried items from the last drawn status.
func (c *Client) inventory() entity.Inventory {
	inv := entity.Inventory{}
	for _, stack := range c.status.Inventory {
		inv = inv.Add(stack.Item, stack.Count)
	}
	return inv
}

// Start creates a new save when id is empty and returns the id to play.
func Start(ctx context.Context, svc *game.Service, id string, req game.CreateRequest) (string, error) {
	if id != "" {
		if _, err := svc.Status(ctx, id); err != nil {
			return "", fmt.Errorf("resume %s: %w", id, err)
		}
		return id, nil
	}
	snap, err := svc.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return snap.ID, nil
}
