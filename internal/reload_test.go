package maestrotop

import "testing"

func TestReloaderGeneration(t *testing.T) {
	r := NewReloader()
	if r.Generation() != 0 {
		t.Fatalf("initial generation = %d", r.Generation())
	}
	if gen := r.Bump(); gen != 1 {
		t.Fatalf("first bump = %d", gen)
	}
	if gen := r.Bump(); gen != 2 {
		t.Fatalf("second bump = %d", gen)
	}
}

func TestReloaderNotifiesInRegistrationOrder(t *testing.T) {
	r := NewReloader()

	var order []string
	r.Subscribe(func(gen uint64) {
		order = append(order, "first")
		if gen != 1 {
			t.Errorf("first subscriber saw generation %d", gen)
		}
	})
	r.Subscribe(func(gen uint64) {
		order = append(order, "second")
	})

	r.Bump()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("order = %v", order)
	}
}

func TestReloaderBumpWithoutSubscribers(t *testing.T) {
	r := NewReloader()
	if gen := r.Bump(); gen != 1 {
		t.Fatalf("bump = %d", gen)
	}
}
