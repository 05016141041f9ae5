package room

import (
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/harshil753/overcast-sub001/pkg/variables"
)

// The room universe is fixed: six cohort rooms, created at process start,
// never mutated afterwards.
const registrySize = 6

const fallbackMaxCapacity = 10

type Room struct {
	ID               string    `json:"id"`
	DisplayName      string    `json:"displayName"`
	MaxCapacity      int       `json:"maxCapacity"`
	RemoteSessionURL string    `json:"remoteSessionUrl"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Registry holds the fixed room set. It is read-only after construction and
// safe to share across request handlers without locking.
type Registry struct {
	rooms []Room
	index map[string]int
}

func newRegistry(maxCapacity int, baseURL string, createdAt time.Time) *Registry {
	rooms := make([]Room, 0, registrySize)
	index := make(map[string]int, registrySize)

	for i := 1; i <= registrySize; i++ {
		id := fmt.Sprintf("cohort-%d", i)
		index[id] = len(rooms)
		rooms = append(rooms, Room{
			ID:               id,
			DisplayName:      fmt.Sprintf("Cohort %d", i),
			MaxCapacity:      maxCapacity,
			RemoteSessionURL: fmt.Sprintf("%s/%s", baseURL, id),
			CreatedAt:        createdAt,
		})
	}

	return &Registry{
		rooms: rooms,
		index: index,
	}
}

// List returns the rooms ascending by cohort number. The order is identical
// across calls for the process lifetime.
func (r *Registry) List() []Room {
	rooms := make([]Room, len(r.rooms))
	copy(rooms, r.rooms)
	return rooms
}

// Get looks a room up by exact id. No prefix or fuzzy matching, malformed and
// unknown ids both miss.
func (r *Registry) Get(id string) (Room, bool) {
	i, exist := r.index[id]
	if !exist {
		return Room{}, false
	}
	return r.rooms[i], true
}

type NewRegistryParams struct {
	fx.In

	Logger *slog.Logger
}

func NewRegistry(params NewRegistryParams) *Registry {
	maxCapacity, err := variables.ParseInt(variables.Env(
		variables.ROOM_MAX_CAPACITY_NAME,
		variables.ROOM_MAX_CAPACITY_DEFAULT,
	))
	if err != nil || maxCapacity <= 0 {
		params.Logger.Warn("invalid room capacity, using fallback",
			slog.Int("fallback", fallbackMaxCapacity))
		maxCapacity = fallbackMaxCapacity
	}

	baseURL := variables.Env(
		variables.CONFERENCE_BASE_URL_NAME,
		variables.CONFERENCE_BASE_URL_DEFAULT,
	)

	return newRegistry(maxCapacity, baseURL, time.Now().UTC())
}
