package scan

import (
	"regexp"
	"strings"
)

const gsSeparator = "\x1d"

var symbologyPrefixes = []string{"]C1", "]d2", "]Q3", "]e0"}

var controlCharPattern = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// fixedAILengths are the application-identifier value lengths that are fixed
// regardless of content, per spec.md §4.1 step 2.
var fixedAILengths = map[string]int{
	"01": 14,
	"11": 6,
	"15": 6,
	"17": 6,
}

// variableAIMaxLengths are AIs whose value runs until a GS separator or the
// end of the string, capped at the given length.
var variableAIMaxLengths = map[string]int{
	"10": 20,
	"21": 20,
}

// Normalize maps a raw scan payload plus an optional format hint to a
// canonical (codeType, normalizedValue) pair. It performs no I/O and is
// deterministic: see the idempotence law in spec.md §8.
func Normalize(formatHint, rawText string) *Result {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil
	}
	hint := strings.ToLower(strings.TrimSpace(formatHint))

	if looksLikeGS1(hint, text) {
		if r := normalizeGS1(text); r != nil {
			return r
		}
	}

	if r := normalizeNumeric(hint, text); r != nil {
		return r
	}

	return normalizeText(hint, text)
}

func looksLikeGS1(hint, text string) bool {
	if strings.Contains(hint, "gs1") {
		return true
	}
	for _, prefix := range symbologyPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	if strings.Contains(text, gsSeparator) {
		return true
	}
	if strings.HasPrefix(text, "(") {
		return true
	}
	if strings.HasPrefix(text, "01") && len(text) >= 16 {
		return true
	}
	return false
}

func stripSymbologyPrefix(text string) string {
	for _, prefix := range symbologyPrefixes {
		if strings.HasPrefix(text, prefix) {
			return text[len(prefix):]
		}
	}
	return text
}

// normalizeGS1 parses either parenthesized (AI)value segments or a
// concatenated fixed/variable-length AI string, per spec.md §4.1 step 2.
func normalizeGS1(text string) *Result {
	body := stripSymbologyPrefix(text)

	var ais map[string]string
	if strings.HasPrefix(body, "(") {
		ais = parseParenthesizedAIs(body)
	} else {
		ais = parseConcatenatedAIs(body)
	}
	if ais == nil {
		return nil
	}

	gtin, ok := ais["01"]
	if !ok {
		return nil
	}

	metadata := map[string]string{}
	if batch, ok := ais["10"]; ok {
		metadata["batch"] = batch
	}
	if expiry, ok := ais["17"]; ok {
		metadata["expiry"] = expiry
	} else if expiry, ok := ais["15"]; ok {
		metadata["expiry"] = expiry
	}
	if serial, ok := ais["21"]; ok {
		metadata["serial"] = serial
	}

	result := &Result{
		CodeType:        "GS1",
		NormalizedValue: toGTIN14(gtin),
	}
	if len(metadata) > 0 {
		result.Metadata = metadata
	}
	return result
}

var parenSegmentPattern = regexp.MustCompile(`\((\d{2,4})\)([^(]*)`)

func parseParenthesizedAIs(body string) map[string]string {
	matches := parenSegmentPattern.FindAllStringSubmatch(body, -1)
	if matches == nil {
		return nil
	}
	ais := make(map[string]string, len(matches))
	for _, m := range matches {
		ais[m[1]] = strings.TrimRight(m[2], gsSeparator)
	}
	return ais
}

func parseConcatenatedAIs(body string) map[string]string {
	ais := map[string]string{}
	i := 0
	for i+2 <= len(body) {
		ai := body[i : i+2]
		i += 2
		if length, ok := fixedAILengths[ai]; ok {
			if i+length > len(body) {
				return nil
			}
			ais[ai] = body[i : i+length]
			i += length
			continue
		}
		if maxLen, ok := variableAIMaxLengths[ai]; ok {
			end := strings.Index(body[i:], gsSeparator)
			var value string
			if end == -1 {
				value = body[i:]
				i = len(body)
			} else {
				value = body[i : i+end]
				i += end + 1
			}
			if len(value) > maxLen {
				value = value[:maxLen]
			}
			ais[ai] = value
			continue
		}
		// Unknown AI: cannot determine its length, stop parsing here but
		// keep whatever was already recovered.
		break
	}
	if len(ais) == 0 {
		return nil
	}
	return ais
}

// toGTIN14 left-pads an 8/12/13-digit GTIN to the canonical 14-digit form.
func toGTIN14(digits string) string {
	if len(digits) >= 14 {
		return digits[len(digits)-14:]
	}
	return strings.Repeat("0", 14-len(digits)) + digits
}

var digitPattern = regexp.MustCompile(`\d`)

func digitsOnly(s string) string {
	return strings.Join(digitPattern.FindAllString(s, -1), "")
}

// normalizeNumeric handles the numeric fallback: UPC-E expansion to UPC-A,
// then canonicalization to a 14-digit GTIN, per spec.md §4.1 step 3.
func normalizeNumeric(hint, text string) *Result {
	digits := digitsOnly(text)
	if len(digits) < 8 || len(digits) > 14 {
		return nil
	}

	value := digits
	if (hint == "upc_e" || hint == "upc-e") && len(digits) == 8 {
		if expanded, ok := expandUPCE(digits); ok {
			value = expanded
		}
	}

	return &Result{
		CodeType:        codeTypeFromHint(hint),
		NormalizedValue: toGTIN14(value),
	}
}

// expandUPCE converts an 8-digit UPC-E code (number system + 6 compressed
// digits + check digit) into its 12-digit UPC-A equivalent using the
// standard middle-digit expansion rules.
func expandUPCE(digits string) (string, bool) {
	if len(digits) != 8 {
		return "", false
	}
	numberSystem := digits[0:1]
	d := digits[1:7]
	check := digits[7:8]
	d6 := d[5:6]

	var body string
	switch {
	case d6 == "0" || d6 == "1" || d6 == "2":
		body = numberSystem + d[0:2] + d6 + "0000" + d[2:5]
	case d6 == "3":
		body = numberSystem + d[0:3] + "00000" + d[3:5]
	case d6 == "4":
		body = numberSystem + d[0:4] + "00000" + d[4:5]
	default:
		body = numberSystem + d[0:5] + "0000" + d6
	}
	return body + check, true
}

func codeTypeFromHint(hint string) string {
	switch hint {
	case "ean", "upc", "code128", "qr", "datamatrix", "gs1":
		return strings.ToUpper(hint)
	case "upc_e", "upc-e":
		return "UPC"
	case "":
		return "UNKNOWN"
	default:
		return strings.ToUpper(hint)
	}
}

// normalizeText is the last-resort fallback: strip control characters and
// emit a *_TEXT codeType derived from the format hint family.
func normalizeText(hint, text string) *Result {
	cleaned := controlCharPattern.ReplaceAllString(text, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	return &Result{
		CodeType:        textCodeTypeFromHint(hint),
		NormalizedValue: cleaned,
	}
}

func textCodeTypeFromHint(hint string) string {
	switch {
	case strings.Contains(hint, "qr"):
		return "QR_TEXT"
	case strings.Contains(hint, "code128"):
		return "CODE128_TEXT"
	case strings.Contains(hint, "datamatrix"):
		return "DATAMATRIX_TEXT"
	default:
		return "UNKNOWN_TEXT"
	}
}
