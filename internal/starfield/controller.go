package starfield

import (
	"github.com/charmbracelet/log"
)

// PreferenceKey is the store key holding the show-stars flag.
const PreferenceKey = "showStars"

const (
	valueOn  = "1"
	valueOff = "0"
)

// Store is a string key/value store for UI preferences. ok is false when the
// key has never been written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Controller owns the show-stars preference for one session. It is not safe
// for concurrent use; all calls are expected from the UI event loop.
type Controller struct {
	store    Store
	logger   *log.Logger
	layers   []LayerSpec
	rng      RandSource
	on       bool
	onChange []func(on bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLayers replaces the default layer specs.
func WithLayers(specs []LayerSpec) Option {
	return func(c *Controller) { c.layers = specs }
}

// WithRand sets the random source used by Background.
func WithRand(rng RandSource) Option {
	return func(c *Controller) { c.rng = rng }
}

// NewController reads the stored preference once. A missing or unreadable
// value leaves the stars on; a stored value is on only when it is "1".
func NewController(store Store, logger *log.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		store:  store,
		logger: logger,
		layers: DefaultLayers(),
		rng:    DefaultRand,
		on:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.on = c.load()
	return c
}

func (c *Controller) load() bool {
	if c.store == nil {
		return true
	}
	v, ok, err := c.store.Get(PreferenceKey)
	if err != nil {
		c.logger.Debug("stars preference unreadable, using default", "key", PreferenceKey, "err", err)
		return true
	}
	if !ok {
		return true
	}
	return v == valueOn
}

// On reports whether the background is shown.
func (c *Controller) On() bool { return c.on }

// Label is the toggle button text.
func (c *Controller) Label() string {
	if c.on {
		return "Stars: On"
	}
	return "Stars: Off"
}

// Toggle flips the preference and writes it back. A failed write is logged
// and otherwise ignored; the in-memory state stays authoritative.
func (c *Controller) Toggle() bool {
	c.on = !c.on
	c.persist()
	for _, fn := range c.onChange {
		fn(c.on)
	}
	return c.on
}

func (c *Controller) persist() {
	if c.store == nil {
		return
	}
	v := valueOff
	if c.on {
		v = valueOn
	}
	if err := c.store.Set(PreferenceKey, v); err != nil {
		c.logger.Debug("stars preference not saved", "key", PreferenceKey, "err", err)
	}
}

// OnChange registers fn to run after every transition.
func (c *Controller) OnChange(fn func(on bool)) {
	c.onChange = append(c.onChange, fn)
}

// Background generates a fresh composition, or nil when the stars are off.
func (c *Controller) Background() []Layer {
	if !c.on {
		return nil
	}
	return Compose(c.rng, c.layers)
}

// HandleKey toggles on the command+S shortcut and consumes the event.
// It reports whether the event was handled.
func (c *Controller) HandleKey(e *KeyEvent) bool {
	if !IsToggleShortcut(e) {
		return false
	}
	e.PreventDefault()
	c.Toggle()
	return true
}

// Mount registers the shortcut handler on kb. The returned unmount removes
// it and is safe to call repeatedly.
func (c *Controller) Mount(kb *Keyboard) (unmount func()) {
	return kb.Listen(func(e *KeyEvent) { c.HandleKey(e) })
}
