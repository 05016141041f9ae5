package mediacaps

import (
	"regexp"
	"strings"
)

type BrowserInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	IsSupported bool   `json:"isSupported"`
}

// browserRule is one branch of the user agent classifier. Rules are evaluated
// top to bottom, first match wins, substring tests are case-sensitive.
type browserRule struct {
	name      string
	matches   func(userAgent string) bool
	version   *regexp.Regexp
	supported bool
}

var browserRules = []browserRule{
	{
		name: "Chrome",
		matches: func(userAgent string) bool {
			return strings.Contains(userAgent, "Chrome") && !strings.Contains(userAgent, "Edge")
		},
		version:   regexp.MustCompile(`Chrome/(\d+)`),
		supported: true,
	},
	{
		name: "Firefox",
		matches: func(userAgent string) bool {
			return strings.Contains(userAgent, "Firefox")
		},
		version:   regexp.MustCompile(`Firefox/(\d+)`),
		supported: true,
	},
	{
		name: "Safari",
		matches: func(userAgent string) bool {
			return strings.Contains(userAgent, "Safari") && !strings.Contains(userAgent, "Chrome")
		},
		version:   regexp.MustCompile(`Version/(\d+)`),
		supported: true,
	},
	{
		name: "Edge",
		matches: func(userAgent string) bool {
			return strings.Contains(userAgent, "Edge")
		},
		version:   regexp.MustCompile(`Edge/(\d+)`),
		supported: true,
	},
	{
		name: "Internet Explorer",
		matches: func(userAgent string) bool {
			return strings.Contains(userAgent, "Trident")
		},
		version:   regexp.MustCompile(`rv:(\d+)`),
		supported: false,
	},
}

// IdentifyBrowser classifies a user agent string. A rule match without a
// version capture still keeps the rule's supported default.
func IdentifyBrowser(userAgent string) BrowserInfo {
	for _, rule := range browserRules {
		if !rule.matches(userAgent) {
			continue
		}

		version := "Unknown"
		if match := rule.version.FindStringSubmatch(userAgent); match != nil {
			version = match[1]
		}

		return BrowserInfo{
			Name:        rule.name,
			Version:     version,
			IsSupported: rule.supported,
		}
	}

	return BrowserInfo{
		Name:        "Unknown",
		Version:     "Unknown",
		IsSupported: false,
	}
}
