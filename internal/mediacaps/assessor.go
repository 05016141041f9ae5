package mediacaps

import (
	"fmt"
	"log/slog"
)

// Fallback guidance, appended in this fixed order. A condition never suppresses
// a later one.
const (
	recommendModernBrowser   = "Use a modern browser such as Chrome, Firefox, or Edge to enable recording"
	recommendPermissions     = "Enable camera and microphone permissions in your browser settings"
	recommendVideoSupport    = "Check that your browser supports video recording"
	recommendAudioSupport    = "Check that your browser supports audio recording"
	recommendNoVideoCodecs   = "No supported video codecs were found, recording quality may be limited or unavailable"
	recommendNoAudioCodecs   = "No supported audio codecs were found, recording quality may be limited or unavailable"
	recommendBrowserTemplate = "%s is not a supported browser for recording"
)

// Validation error strings, in the fixed check order.
const (
	errRecorderUnsupported = "MediaRecorder API is not supported"
	errCaptureUnsupported  = "Media capture (getUserMedia) is not supported"
	errVideoUnsupported    = "Video recording is not supported"
	errAudioUnsupported    = "Audio recording is not supported"
	errNoVideoCodecs       = "No supported video codecs available"
	errNoAudioCodecs       = "No supported audio codecs available"
)

// preferredVideoMimeTypes is the recording codec priority: VP9 for compression
// efficiency first, then broader compatibility.
var preferredVideoMimeTypes = []string{
	"video/webm;codecs=vp9,opus",
	"video/webm;codecs=vp8,opus",
	"video/webm;codecs=vp9",
	"video/webm;codecs=vp8",
}

type Report struct {
	MediaRecorderSupported  bool        `json:"mediaRecorderSupported"`
	CaptureSupported        bool        `json:"captureSupported"`
	VideoRecordingSupported bool        `json:"videoRecordingSupported"`
	AudioRecordingSupported bool        `json:"audioRecordingSupported"`
	SupportedVideoMimeTypes []string    `json:"supportedVideoMimeTypes"`
	SupportedAudioMimeTypes []string    `json:"supportedAudioMimeTypes"`
	Browser                 BrowserInfo `json:"browser"`
	FallbackRecommendations []string    `json:"fallbackRecommendations"`
}

type Validation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Assessor combines probe results and browser identity into an advisory
// compatibility report. It never fails past its boundary: every probe failure
// degrades to the conservative negative plus a recommendation.
type Assessor struct {
	probe     Probe
	userAgent string
	logger    *slog.Logger
}

type NewAssessorParams struct {
	Probe     Probe
	UserAgent string
	Logger    *slog.Logger
}

func NewAssessor(params NewAssessorParams) *Assessor {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Assessor{
		probe:     params.Probe,
		userAgent: params.UserAgent,
		logger:    logger,
	}
}

// Assess recomputes the report from scratch on every call. Capabilities only
// change with a page reload, so nothing is cached.
func (a *Assessor) Assess() Report {
	recorder := a.probe.RecorderSupported()
	capture := a.probe.CaptureSupported()

	// Per-track support is not probed independently, recording either works
	// for both directions or neither.
	recording := recorder && capture

	report := Report{
		MediaRecorderSupported:  recorder,
		CaptureSupported:        capture,
		VideoRecordingSupported: recording,
		AudioRecordingSupported: recording,
		SupportedVideoMimeTypes: SupportedVideoMimeTypes(a.probe),
		SupportedAudioMimeTypes: SupportedAudioMimeTypes(a.probe),
		Browser:                 IdentifyBrowser(a.userAgent),
		FallbackRecommendations: make([]string, 0),
	}

	if !report.MediaRecorderSupported {
		report.FallbackRecommendations = append(report.FallbackRecommendations, recommendModernBrowser)
	}
	if !report.CaptureSupported {
		report.FallbackRecommendations = append(report.FallbackRecommendations, recommendPermissions)
	}
	if !report.VideoRecordingSupported {
		report.FallbackRecommendations = append(report.FallbackRecommendations, recommendVideoSupport)
	}
	if !report.AudioRecordingSupported {
		report.FallbackRecommendations = append(report.FallbackRecommendations, recommendAudioSupport)
	}
	if len(report.SupportedVideoMimeTypes) == 0 {
		report.FallbackRecommendations = append(report.FallbackRecommendations, recommendNoVideoCodecs)
	}
	if len(report.SupportedAudioMimeTypes) == 0 {
		report.FallbackRecommendations = append(report.FallbackRecommendations, recommendNoAudioCodecs)
	}
	if !report.Browser.IsSupported {
		report.FallbackRecommendations = append(report.FallbackRecommendations,
			fmt.Sprintf(recommendBrowserTemplate, report.Browser.Name))
	}

	return report
}

func (a *Assessor) IsFullySupported() bool {
	report := a.Assess()
	return report.MediaRecorderSupported &&
		report.CaptureSupported &&
		report.VideoRecordingSupported &&
		report.AudioRecordingSupported &&
		len(report.SupportedVideoMimeTypes) > 0 &&
		len(report.SupportedAudioMimeTypes) > 0 &&
		report.Browser.IsSupported
}

// SelectBestMimeType picks the recording mime type: first preferred entry the
// probe supports, else the first supported video mime type, else none.
func (a *Assessor) SelectBestMimeType() (string, bool) {
	supported := SupportedVideoMimeTypes(a.probe)

	for _, preferred := range preferredVideoMimeTypes {
		for _, mimeType := range supported {
			if mimeType == preferred {
				return preferred, true
			}
		}
	}

	if len(supported) > 0 {
		a.logger.Warn("no preferred recording mime type available, falling back",
			slog.String("mimeType", supported[0]))
		return supported[0], true
	}

	return "", false
}

// ValidateRequirements re-derives the report and maps each unmet condition to
// a fixed error string, in the check order above.
func (a *Assessor) ValidateRequirements() Validation {
	report := a.Assess()

	errs := make([]string, 0)
	if !report.MediaRecorderSupported {
		errs = append(errs, errRecorderUnsupported)
	}
	if !report.CaptureSupported {
		errs = append(errs, errCaptureUnsupported)
	}
	if !report.VideoRecordingSupported {
		errs = append(errs, errVideoUnsupported)
	}
	if !report.AudioRecordingSupported {
		errs = append(errs, errAudioUnsupported)
	}
	if len(report.SupportedVideoMimeTypes) == 0 {
		errs = append(errs, errNoVideoCodecs)
	}
	if len(report.SupportedAudioMimeTypes) == 0 {
		errs = append(errs, errNoAudioCodecs)
	}

	return Validation{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
