package system

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

// ErrInvalidCommand is returned for malformed or unknown console commands
var ErrInvalidCommand = errors.New("invalid command")

// Command is a parsed console line
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a console line such as "$spawnmob hornet 3".
// Lines that do not start with '$' are rejected.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "$") {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, line)
	}
	return Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, nil
}

// parseRarity accepts a ladder index, clamped, or a rarity name
func parseRarity(arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return entity.RarityName(n), nil
	}
	for _, name := range entity.RarityNames {
		if strings.EqualFold(name, arg) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRarity, arg)
}

// Execute runs a console line against the simulation and returns a short
// human-readable result
func (s *Simulation) Execute(line string) (string, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return "", err
	}
	w := s.World

	switch cmd.Name {
	case "$spawnmob":
		if len(cmd.Args) < 2 {
			return "", fmt.Errorf("%w: usage: $spawnmob <name> <rarity>", ErrInvalidCommand)
		}
		rarity, err := parseRarity(cmd.Args[1])
		if err != nil {
			return "", err
		}
		m, err := s.factory.Named(cmd.Args[0], rarity, w.Player.X, w.Player.Y)
		if err != nil {
			return "", err
		}
		w.AddMob(m)
		return fmt.Sprintf("spawned %s (%s) near player", m.Name, m.RarityName), nil

	case "$setwave":
		if len(cmd.Args) < 1 {
			return "", fmt.Errorf("%w: usage: $setwave <number>", ErrInvalidCommand)
		}
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil || n < 1 {
			return "", fmt.Errorf("%w: invalid wave number %q", ErrInvalidCommand, cmd.Args[0])
		}
		s.SetWave(n)
		return fmt.Sprintf("wave set to %d", n), nil

	case "$godmode":
		w.Player.Godmode = !w.Player.Godmode
		if w.Player.Godmode {
			return "godmode enabled", nil
		}
		return "godmode disabled", nil

	case "$givepetal":
		if len(cmd.Args) < 2 {
			return "", fmt.Errorf("%w: usage: $givepetal <name> <rarity>", ErrInvalidCommand)
		}
		rarity, err := parseRarity(cmd.Args[1])
		if err != nil {
			return "", err
		}
		w.Player.AddItem(cmd.Args[0], rarity, 1)
		s.inventoryChanged()
		return fmt.Sprintf("given %s (%s)", cmd.Args[0], rarity), nil

	case "$craft":
		item, err := w.Player.Craft()
		if err != nil {
			return "", err
		}
		s.inventoryChanged()
		return fmt.Sprintf("crafted %s (%s)", item.Type, item.Rarity), nil

	default:
		return "", fmt.Errorf("%w: unknown command %s", ErrInvalidCommand, cmd.Name)
	}
}
