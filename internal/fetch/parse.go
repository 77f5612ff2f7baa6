package fetch

import (
	"regexp"
	"strings"
)

var (
	hostnameLabelRe  = regexp.MustCompile(`(?i)Hostname\s*:\s*([A-Za-z0-9._\-]+)`)
	hostnameTokenRe  = regexp.MustCompile(`^[A-Za-z0-9._\-]+$`)
	hostnameConfigRe = regexp.MustCompile(`^\s*hostname\s+([A-Za-z0-9._\-]+)\s*$`)

	modelNumberRe   = regexp.MustCompile(`(?i)Model\s+Number\s*:\s*(\S+)`)
	modelNumberIsRe = regexp.MustCompile(`(?i)Model\s+number\s+is\s+(\S+)`)

	// moduleRowRe matches a module-table data row: slot number, port
	// count, then description columns.
	moduleRowRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(.*\S)\s*$`)

	// productCodeRe matches vendor product-family codes such as
	// N9K-C93180YC-EX, WS-C3850-48T or C9300-24T.
	productCodeRe = regexp.MustCompile(`\b(?:N[1-9][A-Z0-9]*K-[A-Z0-9\-]+|WS-[A-Z0-9\-]+|C9[0-9]{3}[A-Z0-9\-]*)\b`)
)

// parseHostnameSummary handles dialect A "show hostname" output: either a
// "Hostname: X" labelled line, or a single bare alphanumeric token.
func parseHostnameSummary(output string) string {
	lines := nonEmptyLines(output)
	for _, line := range lines {
		if m := hostnameLabelRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	if len(lines) == 1 && hostnameTokenRe.MatchString(lines[0]) {
		return lines[0]
	}
	return ""
}

// parseHostnameConfig handles dialect B filtered running-config output:
// a "hostname <token>" line.
func parseHostnameConfig(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if m := hostnameConfigRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseModelNumber extracts "Model Number: X" from version output.
func parseModelNumber(output string) string {
	if m := modelNumberRe.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return ""
}

// parseModelNumberIs extracts "Model number is X" from hardware output.
func parseModelNumberIs(output string) string {
	if m := modelNumberIsRe.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return ""
}

// parseModelFromModules extracts a model from a module/slot table. Rows for
// supervisors and fabric modules are skipped since they name the card, not
// the chassis. Falls back to matching a product-family code anywhere in the
// raw text.
func parseModelFromModules(output string) string {
	for _, line := range strings.Split(output, "\n") {
		m := moduleRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lower := strings.ToLower(m[3])
		if strings.Contains(lower, "supervisor") || strings.Contains(lower, "fabric") {
			continue
		}
		// Model sits in the second-to-last column, before status.
		fields := strings.Fields(m[3])
		if len(fields) >= 2 {
			candidate := fields[len(fields)-2]
			if productCodeRe.MatchString(candidate) {
				return candidate
			}
		}
	}

	if m := productCodeRe.FindString(output); m != "" {
		return m
	}
	return ""
}

// nonEmptyLines splits output into trimmed, non-blank lines.
func nonEmptyLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
