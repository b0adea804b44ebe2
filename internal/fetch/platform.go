package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known job board
type Platform string

// Recognized job boards
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffixes []string
	platform Platform
}{
	{[]string{"greenhouse.io"}, PlatformGreenhouse},
	{[]string{"lever.co"}, PlatformLever},
	{[]string{"myworkdayjobs.com", "workday.com"}, PlatformWorkday},
}

// DetectPlatform identifies the job board hosting rawURL
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range platformHosts {
		for _, suffix := range p.suffixes {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

// genericSelectors find the posting on pages from unknown boards
var genericSelectors = []string{
	".job-description",
	"#job-description",
	".job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

var platformSelectors = map[Platform][]string{
	PlatformGreenhouse: {".job__description.body", ".job__description", ".job-description__content", "#content"},
	PlatformLever:      {".posting-page", ".posting-description", ".section-wrapper.page-full-width", ".content"},
	PlatformWorkday:    {"[data-automation-id='jobDescription']", ".job-description"},
}

// ContentSelectors returns the selectors locating the posting text on a platform's pages
func ContentSelectors(p Platform) []string {
	if s, ok := platformSelectors[p]; ok {
		return s
	}
	return genericSelectors
}

// commonNoise covers application forms, EEO notices and share widgets
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

var platformNoise = map[Platform][]string{
	PlatformGreenhouse: {".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	PlatformLever:      {".apply-section", ".lever-application-form", ".posting-apply"},
	PlatformWorkday:    {"[data-automation-id='applyButton']", ".application-section"},
}

// NoiseSelectors returns the elements stripped before extracting a platform's posting text
func NoiseSelectors(p Platform) []string {
	return append(append([]string(nil), commonNoise...), platformNoise[p]...)
}
