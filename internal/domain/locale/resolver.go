package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocaleCode is the fallback locale when nothing else matches
const DefaultLocaleCode = "en_US"

// DefaultSourceLocale is the source locale for localization workflows
const DefaultSourceLocale = "en_US"

// supportedLocales is the fixed set of locale codes the storefront serves
var supportedLocales = map[string]bool{
	"en_US": true,
	"en_CA": true,
	"en_GB": true,
	"fr_FR": true,
	"fr_CA": true,
	"es_MX": true,
	"de_DE": true,
	"ja_JP": true,
}

// countryLocales maps a detected country to its storefront locale
var countryLocales = map[string]string{
	"CA": "en_CA",
	"MX": "es_MX",
	"DE": "de_DE",
	"FR": "fr_FR",
	"GB": "en_GB",
	"JP": "ja_JP",
}

// SupportedLocaleCodes returns the fixed supported locale set
func SupportedLocaleCodes() []string {
	codes := make([]string, 0, len(supportedLocales))
	for code := range supportedLocales {
		codes = append(codes, code)
	}
	return codes
}

// IsSupported reports whether the locale code is in the supported set
func IsSupported(code string) bool {
	return supportedLocales[code]
}

// ResolveLocale resolves the best locale for a session from the
// Accept-Language header and the detected country. It is pure and total:
// it always returns a supported locale code and never fails.
//
// Header entries are considered in listed order; q-weights are stripped,
// not compared numerically, so the first listed tag that matches wins.
func ResolveLocale(acceptLanguage, detectedCountry string) string {
	header := strings.TrimSpace(acceptLanguage)
	if header == "" {
		return localeForCountry(detectedCountry)
	}

	for _, entry := range strings.Split(header, ",") {
		candidate := strings.TrimSpace(entry)
		// strip the ;q=... weight suffix
		if idx := strings.Index(candidate, ";"); idx >= 0 {
			candidate = strings.TrimSpace(candidate[:idx])
		}
		if candidate == "" || candidate == "*" {
			continue
		}

		lang, region, ok := parseLanguageTag(candidate)
		if !ok {
			continue
		}

		if region != "" {
			if code := lang + "_" + region; supportedLocales[code] {
				return code
			}
		}
		if code, ok := heuristicLocale(lang, region); ok {
			return code
		}
	}

	return DefaultLocaleCode
}

// parseLanguageTag canonicalizes a single Accept-Language entry into a
// lowercase language code and an uppercase region code (empty when absent).
func parseLanguageTag(candidate string) (lang, region string, ok bool) {
	tag, err := language.Parse(strings.ReplaceAll(candidate, "_", "-"))
	if err != nil {
		return "", "", false
	}

	base, conf := tag.Base()
	if conf == language.No {
		return "", "", false
	}
	lang = base.String()

	if reg, conf := tag.Region(); conf >= language.High && reg.IsCountry() {
		region = reg.String()
	}
	return lang, region, true
}

// heuristicLocale maps a language (plus optional country) to the closest
// supported locale when no exact match exists.
func heuristicLocale(lang, region string) (string, bool) {
	switch lang {
	case "en":
		if region == "CA" {
			return "en_CA", true
		}
		if region == "GB" {
			return "en_GB", true
		}
		return "en_US", true
	case "fr":
		if region == "CA" {
			return "fr_CA", true
		}
		return "fr_FR", true
	case "es":
		return "es_MX", true
	case "de":
		return "de_DE", true
	case "ja":
		return "ja_JP", true
	}
	return "", false
}

// localeForCountry maps a detected country through the fixed country table
func localeForCountry(countryCode string) string {
	if code, ok := countryLocales[strings.ToUpper(strings.TrimSpace(countryCode))]; ok {
		return code
	}
	return DefaultLocaleCode
}
