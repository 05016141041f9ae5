package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	echo "github.com/labstack/echo/v4"
	"go.uber.org/fx"

	globalprotocol "github.com/harshil753/overcast-sub001/pkg/protocol"
	"github.com/harshil753/overcast-sub001/pkg/wsutils"
)

var (
	ErrInvalidRoomID   = errors.New("invalid room id")
	ErrRoomNotExist    = errors.New("room not exist")
	ErrRosterCanceled  = errors.New("roster connection canceled by peer")
	ErrAlreadyJoined   = errors.New("participant already joined on this connection")
	ErrJoinRequired    = errors.New("join must be the first roster event")
	ErrUnknownRole     = errors.New("unknown participant role")
	ErrWrongDataFormat = errors.New("wrong data format")
	ErrWrongWsEvent    = errors.New("wrong message event")
	ErrLobbyDisconnect = errors.New("lobby listener disconnected")
)

const (
	codeInvalidRoomID = "INVALID_ROOM_ID"
	codeRoomNotFound  = "ROOM_NOT_FOUND"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type roomListResponse struct {
	Rooms []Summary `json:"rooms"`
}

type roomDetailResponse struct {
	Summary
	MaxCapacity int           `json:"maxCapacity"`
	Instructors []Participant `json:"instructors"`
	Students    []Participant `json:"students"`
	CreatedAt   string        `json:"createdAt"`
}

type websocketMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

type rosterJoinData struct {
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type rosterStateData struct {
	AudioEnabled    bool   `json:"audioEnabled"`
	VideoEnabled    bool   `json:"videoEnabled"`
	ConnectionState string `json:"connectionState"`
}

// normalizeRoomID validates an :id path parameter. It accepts "3" or
// "cohort-3"; anything outside cohort 1..6 is a caller-side validation
// failure.
func normalizeRoomID(raw string) (string, error) {
	number := strings.TrimPrefix(raw, "cohort-")
	if len(number) != 1 || number[0] < '1' || number[0] > '6' {
		return "", ErrInvalidRoomID
	}
	return "cohort-" + number, nil
}

type roomController struct {
	registry *Registry
	roster   *RosterStore
	notifier *Notifier
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func (ctrl *roomController) wsError(w *wsutils.ThreadSafeWriter, err error) error {
	ctrl.logger.Error(fmt.Sprintf("%s | Err: %s", w.Conn.RemoteAddr(), err))
	w.WriteJSON(&websocketMessage{
		Event: "error",
		Data:  ErrWrongDataFormat.Error(),
	})
	return err
}

// RoomControllerRoomList serves the lobby listing. Summaries are recomputed
// from live rosters on every request, never cached.
func (ctrl *roomController) RoomControllerRoomList(ctx echo.Context) error {
	rooms := ctrl.registry.List()

	summaries := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, Summarize(r, ctrl.roster.Snapshot(r.ID)))
	}

	return ctx.JSON(http.StatusOK, roomListResponse{Rooms: summaries})
}

func (ctrl *roomController) RoomControllerRoomDetail(ctx echo.Context) error {
	id, err := normalizeRoomID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    codeInvalidRoomID,
			Message: "room id must be one of cohort-1..cohort-6",
		})
	}

	r, exist := ctrl.registry.Get(id)
	if !exist {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    codeRoomNotFound,
			Message: fmt.Sprintf("room %s not found", id),
		})
	}

	roster := ctrl.roster.Snapshot(r.ID)
	buckets := PartitionByRole(roster)

	return ctx.JSON(http.StatusOK, roomDetailResponse{
		Summary:     Summarize(r, roster),
		MaxCapacity: r.MaxCapacity,
		Instructors: buckets.Instructors,
		Students:    buckets.Students,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	})
}

// RoomControllerRoomRoster is the transport-facing websocket. The conferencing
// transport connects once per participant, announces a join, streams state
// changes and leaves on disconnect.
func (ctrl *roomController) RoomControllerRoomRoster(ctx echo.Context) error {
	id, err := normalizeRoomID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    codeInvalidRoomID,
			Message: "room id must be one of cohort-1..cohort-6",
		})
	}

	r, exist := ctrl.registry.Get(id)
	if !exist {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    codeRoomNotFound,
			Message: fmt.Sprintf("room %s not found", id),
		})
	}

	conn, err := ctrl.upgrader.Upgrade(ctx.Response().Writer, ctx.Request(), nil)
	if err != nil {
		ctrl.logger.Error(fmt.Sprintf("Unable upgrade request %+v", ctx.Request()))
		return err
	}

	w := wsutils.NewThreadSafeWriter(conn)
	defer w.Close()

	var sessionID string
	defer func() {
		if sessionID == "" {
			return
		}
		if err := ctrl.roster.Leave(r.ID, sessionID); err != nil {
			ctrl.logger.Warn("roster leave on disconnect failed",
				slog.String("roomId", r.ID), slog.String("sessionId", sessionID))
			return
		}
		ctrl.notifier.DispatchRoomUpdate()
	}()

	message := &websocketMessage{}
	for {
		if err := w.ReadJSON(message); err != nil {
			select {
			case <-ctx.Request().Context().Done():
				return ErrRosterCanceled
			default:
				return ctrl.wsError(w, err)
			}
		}

		switch message.Event {
		case "join":
			if sessionID != "" {
				return ctrl.wsError(w, ErrAlreadyJoined)
			}

			var data rosterJoinData
			if err := json.Unmarshal([]byte(message.Data), &data); err != nil {
				return ctrl.wsError(w, err)
			}

			role := Role(data.Role)
			if role != RoleStudent && role != RoleInstructor {
				return ctrl.wsError(w, ErrUnknownRole)
			}

			participant := Participant{
				SessionID:       uuid.NewString(),
				DisplayName:     data.DisplayName,
				Role:            role,
				ConnectionState: ConnectionStateConnecting,
			}
			if err := ctrl.roster.Join(r.ID, participant); err != nil {
				return ctrl.wsError(w, err)
			}
			sessionID = participant.SessionID

			if len(ctrl.roster.Snapshot(r.ID)) > r.MaxCapacity {
				ctrl.logger.Warn("room over capacity",
					slog.String("roomId", r.ID), slog.Int("maxCapacity", r.MaxCapacity))
			}

			if err := w.WriteJSON(&websocketMessage{
				Event: "joined",
				Data:  sessionID,
			}); err != nil {
				return ctrl.wsError(w, err)
			}
			ctrl.notifier.DispatchRoomUpdate()

		case "state":
			if sessionID == "" {
				return ctrl.wsError(w, ErrJoinRequired)
			}

			var data rosterStateData
			if err := json.Unmarshal([]byte(message.Data), &data); err != nil {
				return ctrl.wsError(w, err)
			}

			snapshot := ctrl.roster.Snapshot(r.ID)
			for _, p := range snapshot {
				if p.SessionID != sessionID {
					continue
				}

				p.AudioEnabled = data.AudioEnabled
				p.VideoEnabled = data.VideoEnabled
				p.ConnectionState = ConnectionState(data.ConnectionState)
				if err := ctrl.roster.Update(r.ID, p); err != nil {
					return ctrl.wsError(w, err)
				}
				break
			}
			ctrl.notifier.DispatchRoomUpdate()

		default:
			return ctrl.wsError(w, ErrWrongWsEvent)
		}
	}
}

// RoomControllerLobbyUpdates holds a websocket open and pushes update-rooms
// events whenever any roster changes.
func (ctrl *roomController) RoomControllerLobbyUpdates(ctx echo.Context) error {
	conn, err := ctrl.upgrader.Upgrade(ctx.Response().Writer, ctx.Request(), nil)
	if err != nil {
		ctrl.logger.Error(fmt.Sprintf("Unable upgrade request %+v", ctx.Request()))
		return err
	}

	w := wsutils.NewThreadSafeWriter(conn)
	defer w.Close()

	id := uuid.NewString()
	ctrl.notifier.Listen(id, w)
	defer ctrl.notifier.Stop(id)

	<-ctx.Request().Context().Done()
	return ErrLobbyDisconnect
}

func (ctrl *roomController) Resolve(router globalprotocol.HttpRouter) error {
	go ctrl.notifier.OnRoomUpdate(context.Background(), func(w *wsutils.ThreadSafeWriter) {
		w.WriteJSON(&websocketMessage{
			Event: "update-rooms",
			Data:  strconv.FormatUint(ctrl.roster.Revision(), 10),
		})
	})

	router.GET("/rooms", ctrl.RoomControllerRoomList)
	router.GET("/rooms/:id", ctrl.RoomControllerRoomDetail)
	router.GET("/rooms/:id/roster", ctrl.RoomControllerRoomRoster)
	router.GET("/lobby/updates", ctrl.RoomControllerLobbyUpdates)
	return nil
}

var _ globalprotocol.HttpResolvable = (*roomController)(nil)

type newRoomController_Params struct {
	fx.In

	Registry *Registry
	Roster   *RosterStore
	Notifier *Notifier
	Logger   *slog.Logger
}

func NewRoomController(params newRoomController_Params) *roomController {
	return &roomController{
		registry: params.Registry,
		roster:   params.Roster,
		notifier: params.Notifier,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: params.Logger,
	}
}
