package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCommandConflict is returned when two commands claim the same name or alias.
var ErrCommandConflict = errors.New("command: name conflict")

// minPrefix is the shortest abbreviation Resolve expands to a command name.
const minPrefix = 2

// Registry maps command names and aliases to Command definitions.
// Keys are stored lowercased.
type Registry struct {
	byKey map[string]*Command // name or alias → command
	names []string            // canonical names, sorted
}

// NewRegistry creates a Registry populated with the given commands.
//
// Postcondition: Returns a Registry, or an error wrapping ErrCommandConflict
// when two commands share a canonical name or alias.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{byKey: make(map[string]*Command, len(cmds)*2)}
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Register adds cmd under its name and every alias.
//
// Postcondition: on error the registry is unchanged.
func (r *Registry) Register(cmd Command) error {
	keys := make([]string, 0, 1+len(cmd.Aliases))
	keys = append(keys, strings.ToLower(cmd.Name))
	for _, a := range cmd.Aliases {
		keys = append(keys, strings.ToLower(a))
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if prev, ok := r.byKey[k]; ok {
			return fmt.Errorf("%w: %q used by %q and %q", ErrCommandConflict, k, prev.Name, cmd.Name)
		}
		if seen[k] {
			return fmt.Errorf("%w: %q repeated in %q", ErrCommandConflict, k, cmd.Name)
		}
		seen[k] = true
	}

	c := cmd
	for _, k := range keys {
		r.byKey[k] = &c
	}
	r.names = append(r.names, keys[0])
	sort.Strings(r.names)
	return nil
}

// Resolve looks up a command by name or alias, case-insensitively. When
// nothing matches exactly, an input of at least two characters that is a
// prefix of exactly one command name resolves to that command.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	input = strings.ToLower(input)
	if cmd, ok := r.byKey[input]; ok {
		return cmd, true
	}
	if len(input) < minPrefix {
		return nil, false
	}
	var match *Command
	for _, name := range r.names {
		if strings.HasPrefix(name, input) {
			if match != nil {
				return nil, false
			}
			match = r.byKey[name]
		}
	}
	return match, match != nil
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.byKey[name])
	}
	return result
}
