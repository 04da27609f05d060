package starfield

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

type mapStore struct {
	data   map[string]string
	getErr error
	setErr error
	writes int
}

func newMapStore() *mapStore { return &mapStore{data: map[string]string{}} }

func (s *mapStore) Get(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *mapStore) Set(key, value string) error {
	s.writes++
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestControllerDefaultsOn(t *testing.T) {
	store := newMapStore()
	c := NewController(store, quietLogger())
	if !c.On() {
		t.Error("expected stars on when nothing is stored")
	}
	if store.writes != 0 {
		t.Errorf("construction should not write, got %d writes", store.writes)
	}
	if got := len(c.Background()); got != 3 {
		t.Errorf("expected 3 layers, got %d", got)
	}
}

func TestControllerInitialState(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		getErr error
		want   bool
	}{
		{"absent", nil, nil, true},
		{"on", map[string]string{PreferenceKey: "1"}, nil, true},
		{"off", map[string]string{PreferenceKey: "0"}, nil, false},
		{"garbage", map[string]string{PreferenceKey: "yes"}, nil, false},
		{"unreadable", nil, errors.New("storage disabled"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore()
			for k, v := range tt.stored {
				store.data[k] = v
			}
			store.getErr = tt.getErr
			c := NewController(store, quietLogger())
			if c.On() != tt.want {
				t.Errorf("On() = %v, want %v", c.On(), tt.want)
			}
		})
	}
}

func TestControllerNilStore(t *testing.T) {
	c := NewController(nil, nil)
	if !c.On() {
		t.Fatal("expected default on")
	}
	if c.Toggle() {
		t.Error("expected off after toggle")
	}
}

func TestControllerToggleWritesFlag(t *testing.T) {
	store := newMapStore()
	c := NewController(store, quietLogger())

	if c.Toggle() {
		t.Fatal("expected off after first toggle")
	}
	if store.data[PreferenceKey] != "0" {
		t.Errorf("stored %q, want \"0\"", store.data[PreferenceKey])
	}
	if c.Background() != nil {
		t.Error("expected no layers while off")
	}
	if c.Label() != "Stars: Off" {
		t.Errorf("Label() = %q", c.Label())
	}

	if !c.Toggle() {
		t.Fatal("expected on after second toggle")
	}
	if store.data[PreferenceKey] != "1" {
		t.Errorf("stored %q, want \"1\"", store.data[PreferenceKey])
	}
	if len(c.Background()) != 3 {
		t.Error("expected all layers after toggling back on")
	}
	if c.Label() != "Stars: On" {
		t.Errorf("Label() = %q", c.Label())
	}
}

func TestControllerRoundTrip(t *testing.T) {
	store := newMapStore()
	NewController(store, quietLogger()).Toggle()

	if NewController(store, quietLogger()).On() {
		t.Error("expected off after reload")
	}

	NewController(store, quietLogger()).Toggle()
	if !NewController(store, quietLogger()).On() {
		t.Error("expected on after second reload")
	}
}

func TestControllerWriteFailureIgnored(t *testing.T) {
	store := newMapStore()
	store.setErr = errors.New("quota exceeded")
	c := NewController(store, quietLogger())

	if c.Toggle() {
		t.Fatal("expected in-memory state off despite write failure")
	}
	if c.On() {
		t.Error("state should remain off")
	}
	if store.writes != 1 {
		t.Errorf("expected one write attempt, got %d", store.writes)
	}
}

func TestControllerOptions(t *testing.T) {
	store := newMapStore()
	store.data[PreferenceKey] = "0"
	specs := []LayerSpec{{Density: 0.01, Size: 1, Opacity: 0.5}}
	zero := RandFunc(func() float64 { return 0 })

	c := NewController(store, quietLogger(), WithLayers(specs), WithRand(zero))
	if c.On() {
		t.Fatal("expected stored off preference to be read")
	}
	c.Toggle()
	layers := c.Background()
	if len(layers) != 1 || len(layers[0].Stars) != 4 {
		t.Fatalf("unexpected layers: %+v", layers)
	}
	if layers[0].Stars[0] != (Star{X: 0, Y: 0, Size: 0.6, Twinkle: 2}) {
		t.Errorf("unexpected star: %+v", layers[0].Stars[0])
	}
	if store.data[PreferenceKey] != "1" {
		t.Errorf("expected \"1\" written back, got %q", store.data[PreferenceKey])
	}
}

func TestControllerOnChange(t *testing.T) {
	c := NewController(newMapStore(), quietLogger())
	var seen []bool
	c.OnChange(func(on bool) { seen = append(seen, on) })
	c.Toggle()
	c.Toggle()
	if len(seen) != 2 || seen[0] || !seen[1] {
		t.Errorf("unexpected transitions: %v", seen)
	}
}
