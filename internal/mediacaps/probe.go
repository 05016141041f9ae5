package mediacaps

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	webrtc "github.com/pion/webrtc/v4"
)

// Candidate recorder mime types, in probing order. The order is part of the
// contract: supported lists preserve it, and codec selection depends on it.
var (
	videoMimeTypeCandidates = []string{
		"video/webm;codecs=vp8",
		"video/webm;codecs=vp9",
		"video/webm;codecs=vp8,opus",
		"video/webm;codecs=vp9,opus",
		"video/mp4;codecs=h264",
		"video/mp4;codecs=h264,aac",
	}

	audioMimeTypeCandidates = []string{
		"audio/webm;codecs=opus",
		"audio/webm;codecs=vorbis",
		"audio/mp4;codecs=aac",
		"audio/ogg;codecs=vorbis",
	}
)

var errMalformedCandidate = errors.New("malformed mime type candidate")

// Probe answers capability questions about a recording runtime. MimeTypeSupported
// must degrade to false when the recorder facility is absent, never fail.
type Probe interface {
	RecorderSupported() bool
	CaptureSupported() bool
	MimeTypeSupported(candidate string) bool
}

func supportedMimeTypes(probe Probe, candidates []string) []string {
	result := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if probe.MimeTypeSupported(candidate) {
			result = append(result, candidate)
		}
	}
	return result
}

// SupportedVideoMimeTypes filters the fixed video candidate list through the
// probe, preserving candidate order.
func SupportedVideoMimeTypes(probe Probe) []string {
	return supportedMimeTypes(probe, videoMimeTypeCandidates)
}

// SupportedAudioMimeTypes filters the fixed audio candidate list through the
// probe, preserving candidate order.
func SupportedAudioMimeTypes(probe Probe) []string {
	return supportedMimeTypes(probe, audioMimeTypeCandidates)
}

// codecTokens splits a recorder candidate like "video/webm;codecs=vp9,opus"
// into its codec tokens.
func codecTokens(candidate string) ([]string, error) {
	container, params, found := strings.Cut(candidate, ";")
	if !found {
		return nil, fmt.Errorf("%w: %q", errMalformedCandidate, candidate)
	}

	if !strings.HasPrefix(container, "video/") && !strings.HasPrefix(container, "audio/") {
		return nil, fmt.Errorf("%w: %q", errMalformedCandidate, candidate)
	}

	codecs, found := strings.CutPrefix(params, "codecs=")
	if !found || codecs == "" {
		return nil, fmt.Errorf("%w: %q", errMalformedCandidate, candidate)
	}

	return strings.Split(codecs, ","), nil
}

// EngineProbe answers capability questions from a fixed RTP codec set, the same
// vocabulary the conferencing transport registers on its media engine. A
// container mime type is supported when every codec token it names has a
// matching engine codec.
type EngineProbe struct {
	logger   *slog.Logger
	recorder bool
	capture  bool
	codecs   map[string]struct{}
}

type NewEngineProbeParams struct {
	Logger           *slog.Logger
	Codecs           []webrtc.RTPCodecCapability
	RecorderDisabled bool
	CaptureDisabled  bool
}

func NewEngineProbe(params NewEngineProbeParams) *EngineProbe {
	codecs := make(map[string]struct{}, len(params.Codecs))
	for _, codec := range params.Codecs {
		// RTP mime types look like "video/VP8"; recorder candidates name the
		// bare lowercase codec token.
		_, token, found := strings.Cut(codec.MimeType, "/")
		if !found {
			continue
		}
		codecs[strings.ToLower(token)] = struct{}{}
	}

	return &EngineProbe{
		logger:   params.Logger,
		recorder: !params.RecorderDisabled,
		capture:  !params.CaptureDisabled,
		codecs:   codecs,
	}
}

func (p *EngineProbe) RecorderSupported() bool {
	return p.recorder
}

func (p *EngineProbe) CaptureSupported() bool {
	return p.capture
}

func (p *EngineProbe) MimeTypeSupported(candidate string) bool {
	if !p.recorder {
		return false
	}

	tokens, err := codecTokens(candidate)
	if err != nil {
		p.logger.Warn("mime type query failed", slog.String("candidate", candidate), slog.String("error", err.Error()))
		return false
	}

	for _, token := range tokens {
		if _, exist := p.codecs[strings.ToLower(strings.TrimSpace(token))]; !exist {
			return false
		}
	}
	return true
}

// StaticProbe is a deterministic probe for tests and degraded runtimes.
type StaticProbe struct {
	Recorder  bool
	Capture   bool
	MimeTypes []string
}

func (p *StaticProbe) RecorderSupported() bool {
	return p.Recorder
}

func (p *StaticProbe) CaptureSupported() bool {
	return p.Capture
}

func (p *StaticProbe) MimeTypeSupported(candidate string) bool {
	if !p.Recorder {
		return false
	}

	for _, mimeType := range p.MimeTypes {
		if mimeType == candidate {
			return true
		}
	}
	return false
}

var (
	_ Probe = (*EngineProbe)(nil)
	_ Probe = (*StaticProbe)(nil)
)
