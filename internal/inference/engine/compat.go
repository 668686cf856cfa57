package engine

import (
	"strconv"
	"strings"
)

// Minimum version for cross-platform (java<->bedrock) conversion. Earlier
// releases predate the Bedrock component model the converters target.
var crossPlatformMinVersion = mcVersion{major: 1, minor: 16}

type mcVersion struct {
	major, minor, patch int
}

// CheckPlatformCompatibility scores a (source, target, version) combination.
// Invariant kept across every branch: IsCompatible == (score >= 0.5).
func (e *Engine) CheckPlatformCompatibility(sourcePlatform, targetPlatform, version string) CompatibilityResult {
	src := strings.ToLower(strings.TrimSpace(sourcePlatform))
	tgt := strings.ToLower(strings.TrimSpace(targetPlatform))

	if !knownPlatform(src) || !knownPlatform(tgt) {
		return CompatibilityResult{IsCompatible: false, CompatibilityScore: 0.2, Reason: "unknown platform"}
	}
	if src == tgt {
		return CompatibilityResult{IsCompatible: true, CompatibilityScore: 1.0, Reason: "same platform"}
	}
	if src == PlatformBoth || tgt == PlatformBoth {
		return CompatibilityResult{IsCompatible: true, CompatibilityScore: 0.9, Reason: "platform-neutral concept"}
	}

	// java <-> bedrock crossing: gate on the minimum supported version.
	v, ok := parseMCVersion(version)
	if !ok {
		return CompatibilityResult{IsCompatible: false, CompatibilityScore: 0.4, Reason: "unparseable version"}
	}
	if v.less(crossPlatformMinVersion) {
		return CompatibilityResult{IsCompatible: false, CompatibilityScore: 0.3, Reason: "version below cross-platform minimum"}
	}
	// Known parity gaps keep cross-platform conversion under full confidence.
	return CompatibilityResult{IsCompatible: true, CompatibilityScore: 0.75, Reason: "cross-platform with parity gaps"}
}

func knownPlatform(p string) bool {
	return p == PlatformJava || p == PlatformBedrock || p == PlatformBoth
}

func parseMCVersion(raw string) (mcVersion, bool) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(raw), "v"))
	if raw == "" {
		return mcVersion{}, false
	}
	parts := strings.SplitN(raw, ".", 3)
	var v mcVersion
	var err error
	if v.major, err = strconv.Atoi(parts[0]); err != nil {
		return mcVersion{}, false
	}
	if len(parts) > 1 {
		if v.minor, err = strconv.Atoi(parts[1]); err != nil {
			return mcVersion{}, false
		}
	}
	if len(parts) > 2 {
		// Trailing qualifiers like "3-pre1" count as the numeric prefix.
		numeric := parts[2]
		if idx := strings.IndexFunc(numeric, func(r rune) bool { return r < '0' || r > '9' }); idx >= 0 {
			numeric = numeric[:idx]
		}
		if numeric != "" {
			if v.patch, err = strconv.Atoi(numeric); err != nil {
				return mcVersion{}, false
			}
		}
	}
	return v, true
}

func (v mcVersion) less(o mcVersion) bool {
	if v.major != o.major {
		return v.major < o.major
	}
	if v.minor != o.minor {
		return v.minor < o.minor
	}
	return v.patch < o.patch
}
