// Package protocol routes decoded packets to typed handlers. Both the client
// session and the relay dispatch through it, so a new packet type only needs
// a case here and in the codec.
package protocol

import "github.com/automoto/skirmish/shared/messages"

// Router holds at most one handler per packet type.
type Router struct {
	onPlayerEvent    func(messages.PlayerEvent)
	onRealtimeChange func(messages.PlayerRealtimeChange)
}

func NewRouter() *Router {
	return &Router{}
}

// OnPlayerEvent registers the handler for discrete action notifications.
func (r *Router) OnPlayerEvent(fn func(messages.PlayerEvent)) {
	r.onPlayerEvent = fn
}

// OnRealtimeChange registers the handler for held-action notifications.
func (r *Router) OnRealtimeChange(fn func(messages.PlayerRealtimeChange)) {
	r.onRealtimeChange = fn
}

// Dispatch calls the handler registered for p's type and reports whether one ran.
func (r *Router) Dispatch(p messages.Packet) bool {
	switch msg := p.(type) {
	case messages.PlayerEvent:
		if r.onPlayerEvent == nil {
			return false
		}
		r.onPlayerEvent(msg)
		return true
	case messages.PlayerRealtimeChange:
		if r.onRealtimeChange == nil {
			return false
		}
		r.onRealtimeChange(msg)
		return true
	}
	return false
}

// DispatchAll dispatches packets in arrival order.
func (r *Router) DispatchAll(packets []messages.Packet) {
	for _, p := range packets {
		r.Dispatch(p)
	}
}
