package starfield

import "testing"

func TestIsToggleShortcut(t *testing.T) {
	tests := []struct {
		event KeyEvent
		want  bool
	}{
		{KeyEvent{Key: "s", Ctrl: true}, true},
		{KeyEvent{Key: "S", Ctrl: true}, true},
		{KeyEvent{Key: "s", Meta: true}, true},
		{KeyEvent{Key: "S", Meta: true}, true},
		{KeyEvent{Key: "s", Ctrl: true, Meta: true}, true},
		{KeyEvent{Key: "s"}, false},
		{KeyEvent{Key: "a", Ctrl: true}, false},
		{KeyEvent{Key: "", Ctrl: true}, false},
		{KeyEvent{Key: "ss", Meta: true}, false},
	}
	for _, tt := range tests {
		e := tt.event
		if got := IsToggleShortcut(&e); got != tt.want {
			t.Errorf("IsToggleShortcut(%+v) = %v, want %v", tt.event, got, tt.want)
		}
	}
	if IsToggleShortcut(nil) {
		t.Error("nil event should not match")
	}
}

func TestMountTogglesOncePerPress(t *testing.T) {
	store := newMapStore()
	c := NewController(store, quietLogger())
	kb := NewKeyboard()
	unmount := c.Mount(kb)
	defer unmount()

	e := &KeyEvent{Key: "S", Ctrl: true}
	kb.Dispatch(e)
	if c.On() {
		t.Fatal("expected off after one press")
	}
	if !e.DefaultPrevented() {
		t.Error("expected default action suppressed")
	}

	kb.Dispatch(&KeyEvent{Key: "s", Meta: true})
	if !c.On() {
		t.Fatal("expected on after second press")
	}
	if store.writes != 2 {
		t.Errorf("expected 2 writes, got %d", store.writes)
	}
}

func TestMountIgnoresOtherKeys(t *testing.T) {
	c := NewController(newMapStore(), quietLogger())
	kb := NewKeyboard()
	defer c.Mount(kb)()

	e := &KeyEvent{Key: "s"}
	kb.Dispatch(e)
	if !c.On() {
		t.Error("plain s should not toggle")
	}
	if e.DefaultPrevented() {
		t.Error("plain s should not be consumed")
	}
}

func TestUnmountDetachesListener(t *testing.T) {
	c := NewController(newMapStore(), quietLogger())
	kb := NewKeyboard()

	unmount := c.Mount(kb)
	if kb.Len() != 1 {
		t.Fatalf("expected 1 listener, got %d", kb.Len())
	}
	unmount()
	unmount()
	if kb.Len() != 0 {
		t.Fatalf("expected 0 listeners, got %d", kb.Len())
	}

	kb.Dispatch(&KeyEvent{Key: "s", Ctrl: true})
	if !c.On() {
		t.Error("detached controller should not toggle")
	}
}

func TestRemountDoesNotDoubleToggle(t *testing.T) {
	c := NewController(newMapStore(), quietLogger())
	kb := NewKeyboard()

	c.Mount(kb)()
	unmount := c.Mount(kb)
	defer unmount()

	kb.Dispatch(&KeyEvent{Key: "s", Ctrl: true})
	if c.On() {
		t.Error("expected exactly one toggle after remount")
	}
}

func TestDispatchOrder(t *testing.T) {
	kb := NewKeyboard()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		kb.Listen(func(*KeyEvent) { order = append(order, i) })
	}
	kb.Dispatch(&KeyEvent{Key: "x"})
	for i, v := range order {
		if v != i {
			t.Fatalf("dispatch order = %v", order)
		}
	}
}
