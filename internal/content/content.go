package content

// Unlockable is content that can be permanently unlocked by the player.
type Unlockable interface {
	// Name is the stable identifier the unlock is stored under.
	Name() string
	ContentType() Type
	// AlwaysUnlocked content never needs unlocking and is never persisted.
	AlwaysUnlocked() bool
	// OnUnlock is called once, the first time the content is unlocked.
	OnUnlock()
}

// Base carries the fields shared by every content kind.
type Base struct {
	Always bool `json:"always_unlocked,omitempty"`

	name  string
	hooks []func()
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) AlwaysUnlocked() bool {
	return b.Always
}

func (b *Base) OnUnlock() {
	for _, h := range b.hooks {
		h()
	}
}

// AddUnlockHook registers fn to run when the content is first unlocked.
func (b *Base) AddUnlockHook(fn func()) {
	b.hooks = append(b.hooks, fn)
}

func (b *Base) setName(name string) {
	b.name = name
}
