// Package commands holds the per-tick queue of category-tagged commands.
package commands

import (
	"time"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Applier is the effect of a command on one matching entity.
type Applier interface {
	Apply(entry *donburi.Entry, dt time.Duration)
}

// Command runs Action against every entity in Category.
type Command struct {
	Category netconfig.Category
	Action   Applier
}

// Queue is a FIFO of commands drained once per simulation tick.
type Queue struct {
	commands []Command
	targets  *donburi.Query
}

func NewQueue() *Queue {
	return &Queue{
		targets: donburi.NewQuery(filter.Contains(components.Category)),
	}
}

func (q *Queue) Push(c Command) {
	q.commands = append(q.commands, c)
}

// Pop removes and returns the oldest command.
func (q *Queue) Pop() (Command, bool) {
	if len(q.commands) == 0 {
		return Command{}, false
	}
	c := q.commands[0]
	q.commands[0] = Command{}
	q.commands = q.commands[1:]
	return c, true
}

func (q *Queue) IsEmpty() bool {
	return len(q.commands) == 0
}

func (q *Queue) Len() int {
	return len(q.commands)
}

// Pending returns a copy of the queued commands, oldest first.
func (q *Queue) Pending() []Command {
	return append([]Command(nil), q.commands...)
}

// Distribute drains the queue, applying each command to every entity whose
// category mask intersects the command's. Commands carry their own target
// filtering, so broadcasting to the whole category is expected.
func (q *Queue) Distribute(w donburi.World, dt time.Duration) {
	for {
		c, ok := q.Pop()
		if !ok {
			break
		}
		if c.Action == nil || c.Category == netconfig.CategoryNone {
			continue
		}
		q.targets.Each(w, func(entry *donburi.Entry) {
			if components.Category.Get(entry).Mask&c.Category != 0 {
				c.Action.Apply(entry, dt)
			}
		})
	}
	q.commands = q.commands[:0]
}
