package config

// ReportingSeverity controls how a class of build diagnostics is reported.
type ReportingSeverity string

const (
	SeverityIgnore ReportingSeverity = "ignore"
	SeverityLog    ReportingSeverity = "log"
	SeverityWarn   ReportingSeverity = "warn"
	SeverityThrow  ReportingSeverity = "throw"
)

var severities = []ReportingSeverity{SeverityIgnore, SeverityLog, SeverityWarn, SeverityThrow}

// Each policy field falls back to its own default.
var (
	severityNormalizer     = newNormalizer(SeverityWarn, severities...)
	linkPolicyNormalizer   = newNormalizer(SeverityThrow, severities...)
	markdownLinkNormalizer = newNormalizer(SeverityWarn, severities...)
)

// NormalizeReportingSeverity returns the canonical value, or "" if raw is unknown.
func NormalizeReportingSeverity(raw string) ReportingSeverity {
	v, _ := severityNormalizer.lookup(raw)
	return v
}

// ColorMode is the default light/dark mode of the site.
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

var colorModeNormalizer = newNormalizer(ColorModeLight, ColorModeLight, ColorModeDark)

// NavbarItemType selects how a navbar entry is rendered.
type NavbarItemType string

const (
	NavbarDocSidebar NavbarItemType = "docSidebar"
	NavbarDoc        NavbarItemType = "doc"
	NavbarLink       NavbarItemType = "link"
)

var navbarTypeNormalizer = newNormalizer(NavbarLink, NavbarDocSidebar, NavbarDoc, NavbarLink)

// NavbarPosition is the side of the navbar an item sits on.
type NavbarPosition string

const (
	PositionLeft  NavbarPosition = "left"
	PositionRight NavbarPosition = "right"
)

var positionNormalizer = newNormalizer(PositionLeft, PositionLeft, PositionRight)
