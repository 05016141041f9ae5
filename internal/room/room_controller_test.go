package room

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
)

func newTestController() (*roomController, *RosterStore) {
	store := NewRosterStore()
	return &roomController{
		registry: newTestRegistry(),
		roster:   store,
		notifier: NewNotifier(),
		logger:   slog.Default(),
	}, store
}

func detailContext(router *echo.Echo, id string) (echo.Context, *httptest.ResponseRecorder) {
	request := httptest.NewRequest(http.MethodGet, "/rooms/"+id, nil)
	recorder := httptest.NewRecorder()
	ctx := router.NewContext(request, recorder)
	ctx.SetPath("/rooms/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	return ctx, recorder
}

func TestNormalizeRoomID(t *testing.T) {
	for name, testCase := range map[string]struct {
		raw  string
		want string
		ok   bool
	}{
		"BareNumber":   {"3", "cohort-3", true},
		"FullID":       {"cohort-3", "cohort-3", true},
		"LowerBound":   {"1", "cohort-1", true},
		"UpperBound":   {"cohort-6", "cohort-6", true},
		"Zero":         {"0", "", false},
		"Seven":        {"7", "", false},
		"OutOfRange":   {"cohort-9", "", false},
		"Malformed":    {"bogus", "", false},
		"Empty":        {"", "", false},
		"MultiDigit":   {"12", "", false},
		"DoublePrefix": {"cohort-cohort-1", "", false},
	} {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			got, err := normalizeRoomID(testCase.raw)
			if testCase.ok && (err != nil || got != testCase.want) {
				t.Errorf("normalizeRoomID(%q) = (%q, %v), want (%q, nil)", testCase.raw, got, err, testCase.want)
			}
			if !testCase.ok && !errors.Is(err, ErrInvalidRoomID) {
				t.Errorf("normalizeRoomID(%q) err = %v, want ErrInvalidRoomID", testCase.raw, err)
			}
		})
	}
}

func TestRoomListEndpoint(t *testing.T) {
	ctrl, store := newTestController()
	store.Join("cohort-2", Participant{SessionID: "a", Role: RoleInstructor})
	store.Join("cohort-2", Participant{SessionID: "b", Role: RoleStudent})

	router := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	recorder := httptest.NewRecorder()

	if err := ctrl.RoomControllerRoomList(router.NewContext(request, recorder)); err != nil {
		t.Fatal(err)
	}
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var response roomListResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}

	if len(response.Rooms) != 6 {
		t.Fatalf("rooms = %d, want 6", len(response.Rooms))
	}
	for i, summary := range response.Rooms {
		wantID := "cohort-" + string(rune('1'+i))
		if summary.ID != wantID {
			t.Errorf("rooms[%d].id = %q, want %q", i, summary.ID, wantID)
		}
	}
	if response.Rooms[1].ParticipantCount != 2 || response.Rooms[1].IsAtCapacity {
		t.Errorf("cohort-2 summary = %+v", response.Rooms[1])
	}
}

func TestRoomDetailEndpoint(t *testing.T) {
	ctrl, store := newTestController()
	store.Join("cohort-3", Participant{SessionID: "i1", DisplayName: "Prof", Role: RoleInstructor})
	store.Join("cohort-3", Participant{SessionID: "s1", DisplayName: "Alice", Role: RoleStudent})
	store.Join("cohort-3", Participant{SessionID: "s2", DisplayName: "Bob", Role: RoleStudent})

	router := echo.New()

	// Both the bare number and the prefixed form address the same room.
	for _, id := range []string{"3", "cohort-3"} {
		ctx, recorder := detailContext(router, id)
		if err := ctrl.RoomControllerRoomDetail(ctx); err != nil {
			t.Fatal(err)
		}
		if recorder.Code != http.StatusOK {
			t.Fatalf("id %q: status = %d", id, recorder.Code)
		}

		var response roomDetailResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
			t.Fatal(err)
		}

		if response.Name != "Cohort 3" || response.ParticipantCount != 3 {
			t.Errorf("id %q: summary = %+v", id, response.Summary)
		}
		if response.MaxCapacity != 10 {
			t.Errorf("id %q: maxCapacity = %d", id, response.MaxCapacity)
		}
		if len(response.Instructors) != 1 || response.Instructors[0].SessionID != "i1" {
			t.Errorf("id %q: instructors = %+v", id, response.Instructors)
		}
		if len(response.Students) != 2 || response.Students[0].SessionID != "s1" {
			t.Errorf("id %q: students = %+v", id, response.Students)
		}
		if response.CreatedAt == "" {
			t.Errorf("id %q: createdAt is empty", id)
		}
	}
}

func TestRoomDetailInvalidID(t *testing.T) {
	ctrl, _ := newTestController()
	router := echo.New()

	for name, id := range map[string]string{
		"Zero":       "0",
		"Seven":      "7",
		"OutOfRange": "cohort-9",
		"Malformed":  "bogus",
	} {
		id := id
		t.Run(name, func(t *testing.T) {
			ctx, recorder := detailContext(router, id)
			if err := ctrl.RoomControllerRoomDetail(ctx); err != nil {
				t.Fatal(err)
			}
			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
			}

			var response errorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatal(err)
			}
			if response.Code != codeInvalidRoomID {
				t.Errorf("code = %q, want %q", response.Code, codeInvalidRoomID)
			}
		})
	}
}

func TestRoomDetailNotFound(t *testing.T) {
	// A trimmed registry exercises the not-found branch that the full
	// six-room universe never reaches.
	full := newTestRegistry()
	trimmed := &Registry{
		rooms: full.rooms[:5],
		index: make(map[string]int),
	}
	for i, r := range trimmed.rooms {
		trimmed.index[r.ID] = i
	}

	ctrl := &roomController{
		registry: trimmed,
		roster:   NewRosterStore(),
		notifier: NewNotifier(),
		logger:   slog.Default(),
	}

	ctx, recorder := detailContext(echo.New(), "cohort-6")
	if err := ctrl.RoomControllerRoomDetail(ctx); err != nil {
		t.Fatal(err)
	}
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}

	var response errorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.Code != codeRoomNotFound {
		t.Errorf("code = %q, want %q", response.Code, codeRoomNotFound)
	}
}
