package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/entity"
	"github.com/cory-johannsen/armory/internal/game/inventory"
)

var (
	// ErrUnknownCommand is returned for input that names no registered command.
	ErrUnknownCommand = errors.New("command: unknown command")
	// ErrUsage is returned when a command's arguments are malformed.
	ErrUsage = errors.New("command: bad arguments")
)

// DefaultDirection is the attack direction used when fire has no arguments.
var DefaultDirection = inventory.Vec3{Z: 1}

// ammoGauge is implemented by weapons that expose magazine state.
type ammoGauge interface {
	Loaded() int
	Capacity() int
}

// Dispatcher runs parsed commands against one entity.
// It must be called from the goroutine that owns the entity.
type Dispatcher struct {
	registry *Registry
	entity   *entity.Entity
	logger   *zap.Logger
}

// NewDispatcher returns a Dispatcher for e.
//
// Precondition: registry, e, and logger must be non-nil.
func NewDispatcher(registry *Registry, e *entity.Entity, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, entity: e, logger: logger}
}

// Dispatch parses line and runs it.
//
// Postcondition: returns the text response, or an error wrapping
// ErrUnknownCommand, ErrUsage, or an inventory error.
func (d *Dispatcher) Dispatch(line string) (string, error) {
	parsed := Parse(line)
	if parsed.Command == "" {
		return "", nil
	}
	cmd, ok := d.registry.Resolve(parsed.Command)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, parsed.Command)
	}
	d.logger.Debug("dispatch", zap.String("command", cmd.Name), zap.Strings("args", parsed.Args))

	sel := d.entity.Selector()
	switch cmd.Handler {
	case HandlerFire:
		dir, err := parseDirection(parsed.Args)
		if err != nil {
			return "", err
		}
		if sel.Len() == 0 {
			return "No weapon to fire.", nil
		}
		sel.UseSelected(dir)
		return d.activeLine(), nil
	case HandlerNext:
		sel.IncrementIndex()
		return d.activeLine(), nil
	case HandlerPrev:
		sel.DecrementIndex()
		return d.activeLine(), nil
	case HandlerSelect:
		if len(parsed.Args) != 1 {
			return "", fmt.Errorf("%w: usage: %s", ErrUsage, cmd.Usage)
		}
		slot, err := strconv.Atoi(parsed.Args[0])
		if err != nil {
			return "", fmt.Errorf("%w: slot %q is not a number", ErrUsage, parsed.Args[0])
		}
		if err := sel.Select(slot - 1); err != nil {
			return "", err
		}
		return d.activeLine(), nil
	case HandlerSingle:
		return d.single(cmd, parsed.Args)
	case HandlerReload:
		if d.entity.Reload() {
			return "Reloading.", nil
		}
		return "Nothing to reload.", nil
	case HandlerStatus:
		return d.status(), nil
	case HandlerHelp:
		return d.help(), nil
	default:
		return "", fmt.Errorf("%w: no action for handler %q", ErrUnknownCommand, cmd.Handler)
	}
}

func (d *Dispatcher) single(cmd *Command, args []string) (string, error) {
	sel := d.entity.Selector()
	if len(args) > 1 {
		return "", fmt.Errorf("%w: usage: %s", ErrUsage, cmd.Usage)
	}
	if len(args) == 1 {
		var on bool
		switch strings.ToLower(args[0]) {
		case "on", "true", "1":
			on = true
		case "off", "false", "0":
		default:
			return "", fmt.Errorf("%w: usage: %s", ErrUsage, cmd.Usage)
		}
		if err := sel.SetSingleFire(on); err != nil {
			return "", err
		}
	}
	on, err := sel.SingleFire()
	if err != nil {
		return "", err
	}
	if on {
		return "Single-fire on.", nil
	}
	return "Single-fire off.", nil
}

func (d *Dispatcher) activeLine() string {
	sel := d.entity.Selector()
	w, err := sel.SelectedWeapon()
	if err != nil {
		return "No weapon."
	}
	return fmt.Sprintf("[%d] %s", sel.SelectedIndex()+1, describe(w))
}

func (d *Dispatcher) status() string {
	slots := d.entity.Selector().Slots()
	if len(slots) == 0 {
		return "No weapons."
	}
	var b strings.Builder
	for i, s := range slots {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := " "
		if s.Enabled {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s", marker, s.Index+1, describe(s.Weapon))
	}
	return b.String()
}

func (d *Dispatcher) help() string {
	var b strings.Builder
	for i, cmd := range d.registry.Commands() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-16s %s", cmd.Usage, cmd.Help)
	}
	return b.String()
}

func describe(w inventory.Weapon) string {
	parts := []string{w.Name()}
	if w.SingleFire() {
		parts = append(parts, "single")
	}
	if g, ok := w.(ammoGauge); ok {
		parts = append(parts, fmt.Sprintf("%d/%d", g.Loaded(), g.Capacity()))
	}
	if r, ok := inventory.AsReloadable(w); ok && r.Reloading() {
		parts = append(parts, "reloading")
	}
	return strings.Join(parts, " ")
}

func parseDirection(args []string) (inventory.Vec3, error) {
	switch len(args) {
	case 0:
		return DefaultDirection, nil
	case 3:
		var v [3]float64
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return inventory.Vec3{}, fmt.Errorf("%w: direction component %q is not a number", ErrUsage, a)
			}
			v[i] = f
		}
		return inventory.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return inventory.Vec3{}, fmt.Errorf("%w: direction needs 3 components, got %d", ErrUsage, len(args))
	}
}
