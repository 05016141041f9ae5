package room

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func newTestRegistry() *Registry {
	return newRegistry(10, "https://overcast.daily.co", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestRegistryListOrder(t *testing.T) {
	registry := newTestRegistry()

	want := []string{"cohort-1", "cohort-2", "cohort-3", "cohort-4", "cohort-5", "cohort-6"}

	// Order must be stable across repeated calls.
	for call := 0; call < 3; call++ {
		rooms := registry.List()
		ids := make([]string, 0, len(rooms))
		for _, r := range rooms {
			ids = append(ids, r.ID)
		}
		if !reflect.DeepEqual(ids, want) {
			t.Fatalf("call %d: ids = %v, want %v", call, ids, want)
		}
	}
}

func TestRegistryListReturnsCopy(t *testing.T) {
	registry := newTestRegistry()

	rooms := registry.List()
	rooms[0].DisplayName = "Hijacked"

	if got := registry.List()[0].DisplayName; got != "Cohort 1" {
		t.Errorf("registry mutated through List result: %q", got)
	}
}

func TestRegistryGet(t *testing.T) {
	registry := newTestRegistry()

	r, exist := registry.Get("cohort-3")
	if !exist {
		t.Fatal("expected cohort-3 to exist")
	}
	if r.DisplayName != "Cohort 3" {
		t.Errorf("DisplayName = %q, want Cohort 3", r.DisplayName)
	}
	if r.MaxCapacity != 10 {
		t.Errorf("MaxCapacity = %d, want 10", r.MaxCapacity)
	}
	if r.RemoteSessionURL != "https://overcast.daily.co/cohort-3" {
		t.Errorf("RemoteSessionURL = %q", r.RemoteSessionURL)
	}

	for name, id := range map[string]string{
		"OutOfRange": "cohort-9",
		"Malformed":  "bogus",
		"BareNumber": "3",
		"Empty":      "",
	} {
		id := id
		t.Run(fmt.Sprintf("Miss%s", name), func(t *testing.T) {
			if _, exist := registry.Get(id); exist {
				t.Errorf("Get(%q) unexpectedly found a room", id)
			}
		})
	}
}
