// Package registry provides a global registry for viewer commands.
// Commands register themselves in init() functions, allowing the prompt
// and the CLI to discover and run them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-parallax/internal/layers"
)

// ErrUsage is wrapped by commands given the wrong arguments.
var ErrUsage = errors.New("usage")

// Variables is the variable store commands read and write.
type Variables interface {
	layers.Values
	Set(id int, value float64)
	IDs() []int
}

// Env is the session a command runs against.
type Env interface {
	// Layers returns the layer command surface.
	Layers() *layers.Commands

	// Variables returns the game-variable store.
	Variables() Variables

	// Refresh reconciles live layers with the registry.
	Refresh() layers.Result

	// Save writes the session to a save slot.
	Save(slot string) error

	// Load replaces the session with a save slot.
	Load(slot string) error
}

// Command is a named text command.
type Command struct {
	Name    string
	Usage   string
	Summary string
	Run     func(env Env, args []string) (string, error)
}

var (
	commands = make(map[string]Command)
	mu       sync.RWMutex
)

// Register adds a command to the registry.
// Typically called from an init() function.
// Panics if a command with the same name is already registered.
func Register(cmd Command) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := commands[cmd.Name]; exists {
		panic(fmt.Sprintf("registry: command %q already registered", cmd.Name))
	}
	commands[cmd.Name] = cmd
}

// List returns all registered commands, sorted by name.
func List() []Command {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Command, 0, len(commands))
	for _, cmd := range commands {
		result = append(result, cmd)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Lookup returns the command with the given name.
func Lookup(name string) (Command, bool) {
	mu.RLock()
	defer mu.RUnlock()

	cmd, ok := commands[name]
	return cmd, ok
}

// Exists checks if a command with the given name is registered.
func Exists(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Execute splits line on whitespace and runs the named command.
// A leading ':' is ignored.
func Execute(env Env, line string) (string, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		return "", nil
	}
	return Run(env, fields[0], fields[1:])
}

// Run runs the named command with args.
func Run(env Env, name string, args []string) (string, error) {
	cmd, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("registry: unknown command %q", name)
	}
	out, err := cmd.Run(env, args)
	if errors.Is(err, ErrUsage) {
		return "", fmt.Errorf("%w: %s %s", ErrUsage, cmd.Name, cmd.Usage)
	}
	return out, err
}
