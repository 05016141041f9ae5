package mediacaps

import (
	"log/slog"
	"reflect"
	"testing"

	webrtc "github.com/pion/webrtc/v4"
)

func newTestEngineProbe(t *testing.T) *EngineProbe {
	t.Helper()
	return NewEngineProbe(NewEngineProbeParams{
		Logger: slog.Default(),
		Codecs: []webrtc.RTPCodecCapability{
			{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000},
			{MimeType: webrtc.MimeTypeVP9, ClockRate: 90000},
			{MimeType: webrtc.MimeTypeH264, ClockRate: 90000},
			{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2},
		},
	})
}

func TestEngineProbeMimeTypeSupported(t *testing.T) {
	probe := newTestEngineProbe(t)

	for name, testCase := range map[string]struct {
		candidate string
		want      bool
	}{
		"VP8":          {"video/webm;codecs=vp8", true},
		"VP9":          {"video/webm;codecs=vp9", true},
		"VP8Opus":      {"video/webm;codecs=vp8,opus", true},
		"VP9Opus":      {"video/webm;codecs=vp9,opus", true},
		"H264":         {"video/mp4;codecs=h264", true},
		"H264AAC":      {"video/mp4;codecs=h264,aac", false},
		"Opus":         {"audio/webm;codecs=opus", true},
		"Vorbis":       {"audio/webm;codecs=vorbis", false},
		"AAC":          {"audio/mp4;codecs=aac", false},
		"Malformed":    {"definitely-not-a-mime-type", false},
		"NoCodecs":     {"video/webm;profile=1", false},
		"BadContainer": {"text/plain;codecs=vp8", false},
	} {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			if got := probe.MimeTypeSupported(testCase.candidate); got != testCase.want {
				t.Errorf("MimeTypeSupported(%q) = %v, want %v", testCase.candidate, got, testCase.want)
			}
		})
	}
}

func TestSupportedMimeTypesPreserveCandidateOrder(t *testing.T) {
	probe := newTestEngineProbe(t)

	wantVideo := []string{
		"video/webm;codecs=vp8",
		"video/webm;codecs=vp9",
		"video/webm;codecs=vp8,opus",
		"video/webm;codecs=vp9,opus",
		"video/mp4;codecs=h264",
	}
	if got := SupportedVideoMimeTypes(probe); !reflect.DeepEqual(got, wantVideo) {
		t.Errorf("SupportedVideoMimeTypes = %v, want %v", got, wantVideo)
	}

	wantAudio := []string{"audio/webm;codecs=opus"}
	if got := SupportedAudioMimeTypes(probe); !reflect.DeepEqual(got, wantAudio) {
		t.Errorf("SupportedAudioMimeTypes = %v, want %v", got, wantAudio)
	}
}

func TestRecorderAbsentDegradesToFalse(t *testing.T) {
	for name, probe := range map[string]Probe{
		"Static": &StaticProbe{Recorder: false, Capture: true, MimeTypes: videoMimeTypeCandidates},
		"Engine": NewEngineProbe(NewEngineProbeParams{
			Logger:           slog.Default(),
			Codecs:           []webrtc.RTPCodecCapability{{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000}},
			RecorderDisabled: true,
		}),
	} {
		probe := probe
		t.Run(name, func(t *testing.T) {
			if probe.MimeTypeSupported("video/webm;codecs=vp8") {
				t.Error("MimeTypeSupported must be false when the recorder is absent")
			}
			if got := SupportedVideoMimeTypes(probe); len(got) != 0 {
				t.Errorf("expected empty video list, got %v", got)
			}
			if got := SupportedAudioMimeTypes(probe); len(got) != 0 {
				t.Errorf("expected empty audio list, got %v", got)
			}
		})
	}
}
