package termcount

import "testing"

func TestInsertAccumulates(t *testing.T) {
	c := New()
	c.Insert("cat")
	c.Insert("cat")
	c.Insert("dog")

	if n, ok := c.Get("cat"); !ok || n != 2 {
		t.Fatalf("expected cat=2, got %d, ok=%v", n, ok)
	}
	if n, ok := c.Get("dog"); !ok || n != 1 {
		t.Fatalf("expected dog=1, got %d, ok=%v", n, ok)
	}
}

func TestGetMissingTerm(t *testing.T) {
	c := New()
	if _, ok := c.Get("absent"); ok {
		t.Fatal("expected ok=false for a term that was never inserted")
	}
}

func TestGetUncheckedPanicsOnMissingTerm(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for GetUnchecked on a missing term")
		}
	}()

	c := New()
	c.GetUnchecked("absent")
}

func TestClearEmptiesCounter(t *testing.T) {
	c := New()
	c.Insert("cat")
	c.Clear()

	if !c.Empty() {
		t.Fatal("expected counter to be empty after Clear")
	}
	if _, ok := c.Get("cat"); ok {
		t.Fatal("expected cat to be gone after Clear")
	}
}

func TestEmptyOnFreshCounter(t *testing.T) {
	if !New().Empty() {
		t.Fatal("expected a fresh counter to be empty")
	}
}
