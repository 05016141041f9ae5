package service

import (
	"log/slog"

	webrtc "github.com/pion/webrtc/v4"
	"go.uber.org/fx"

	"github.com/harshil753/overcast-sub001/internal/mediacaps"
	"github.com/harshil753/overcast-sub001/pkg/variables"
)

type mediaCapsProbe_Params struct {
	fx.In

	Logger *slog.Logger
}

var (
	RECORDING_DISABLED = variables.Env(
		variables.RECORDING_DISABLED_NAME,
		variables.RECORDING_DISABLED_DEFAULT,
	)

	CAPTURE_DISABLED = variables.Env(
		variables.CAPTURE_DISABLED_NAME,
		variables.CAPTURE_DISABLED_DEFAULT,
	)
)

// recordingCodecs mirrors the codec set the conferencing transport negotiates.
// The bundled recorder has no AAC or Vorbis encoder.
func recordingCodecs() []webrtc.RTPCodecCapability {
	return []webrtc.RTPCodecCapability{
		{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000},
		{MimeType: webrtc.MimeTypeVP9, ClockRate: 90000},
		{MimeType: webrtc.MimeTypeH264, ClockRate: 90000},
		{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2},
	}
}

func mediaCapsProbe(params mediaCapsProbe_Params) mediacaps.Probe {
	return mediacaps.NewEngineProbe(mediacaps.NewEngineProbeParams{
		Logger:           params.Logger,
		Codecs:           recordingCodecs(),
		RecorderDisabled: variables.ParseBool(RECORDING_DISABLED),
		CaptureDisabled:  variables.ParseBool(CAPTURE_DISABLED),
	})
}

var MediaCapsModule = fx.Module("mediacaps", fx.Provide(
	mediaCapsProbe,
))
