package main

import (
	"go.uber.org/fx"

	"github.com/harshil753/overcast-sub001/internal/mediacaps"
	"github.com/harshil753/overcast-sub001/internal/room"
	globalprotocol "github.com/harshil753/overcast-sub001/pkg/protocol"
	"github.com/harshil753/overcast-sub001/pkg/service"
)

func main() {
	fx.New(
		fx.Provide(
			room.NewRegistry,
			room.NewRosterStore,
			room.NewNotifier,

			globalprotocol.AsHttpController(room.NewRoomController),
			globalprotocol.AsHttpController(mediacaps.NewCompatibilityController),
		),

		service.LoggerModule,
		service.MediaCapsModule,
		service.HttpModule,
	).Run()
}
