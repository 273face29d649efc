// Package command is the input layer: it parses text lines into commands and
// dispatches them to an entity's weapon selector.
package command

// Categories for organizing commands.
const (
	CategoryWeapon = "weapon"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to dispatcher actions.
const (
	HandlerFire   = "fire"
	HandlerNext   = "next"
	HandlerPrev   = "prev"
	HandlerSelect = "select"
	HandlerSingle = "single"
	HandlerReload = "reload"
	HandlerStatus = "status"
	HandlerHelp   = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "fire [x y z]".
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command.
	Category string
	// Handler selects the dispatcher action.
	Handler string
}

// BuiltinCommands returns all built-in commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "fire", Aliases: []string{"f"}, Usage: "fire [x y z]", Help: "Attack with the active weapon", Category: CategoryWeapon, Handler: HandlerFire},
		{Name: "next", Aliases: []string{"n", "]"}, Usage: "next", Help: "Switch to the next weapon", Category: CategoryWeapon, Handler: HandlerNext},
		{Name: "prev", Aliases: []string{"p", "["}, Usage: "prev", Help: "Switch to the previous weapon", Category: CategoryWeapon, Handler: HandlerPrev},
		{Name: "select", Aliases: []string{"s"}, Usage: "select <slot>", Help: "Switch to a numbered slot (1-based)", Category: CategoryWeapon, Handler: HandlerSelect},
		{Name: "single", Usage: "single [on|off]", Help: "Show or set single-fire on the active weapon", Category: CategoryWeapon, Handler: HandlerSingle},
		{Name: "reload", Aliases: []string{"r"}, Usage: "reload", Help: "Reload the active weapon", Category: CategoryWeapon, Handler: HandlerReload},
		{Name: "status", Aliases: []string{"st", "inv"}, Usage: "status", Help: "List weapon slots", Category: CategorySystem, Handler: HandlerStatus},
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "List commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}
