package domain

// Turn is one exchange unit in a conversation, tagged by speaker role.
// Immutable once appended; append order is the only meaningful order.
type Turn struct {
	Role Role
	Text string
}

// Conversation is an append-only turn log scoped to one session.
// It is not safe for concurrent use; callers serialize access through
// the owning Session.
type Conversation struct {
	turns  []Turn
	window int
}

// NewConversation creates an empty conversation. window caps the number
// of retained turns (oldest evicted first); window <= 0 disables eviction.
func NewConversation(window int) *Conversation {
	return &Conversation{window: window}
}

func (c *Conversation) Append(t Turn) {
	c.turns = append(c.turns, t)
	if c.window > 0 && len(c.turns) > c.window {
		// Drop the oldest turns, keeping the slice compact so the
		// evicted prefix can be collected.
		keep := c.turns[len(c.turns)-c.window:]
		c.turns = append(make([]Turn, 0, c.window), keep...)
	}
}

// Snapshot returns a copy of every retained turn in append order.
// Safe to call on an empty conversation.
func (c *Conversation) Snapshot() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Len() int {
	return len(c.turns)
}
