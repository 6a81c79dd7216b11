package parser

import "strings"

// isVarAssignment reports whether line is a "NAME=VALUE" user
// variable assignment: the first "=" is not preceded by a space, and
// NAME starts with a letter.
func isVarAssignment(line string) (name, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx <= 0 {
		return "", "", false
	}
	name = line[:idx]
	if strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	if !isLetter(name[0]) {
		return "", "", false
	}
	return name, line[idx+1:], true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// shellPassthrough implements pass (b): a line starting with ";" or
// ":" (after leading whitespace) is handed whole to the system shell,
// with the leading marker consumed. A bare variable assignment is
// also resolved here and never reaches dispatch.
func shellPassthrough(line string) (shellLine string, isShell bool, varName, varValue string, isVar bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed != "" && (trimmed[0] == ';' || trimmed[0] == ':') {
		return trimmed[1:], true, "", "", false
	}
	if name, value, ok := isVarAssignment(line); ok {
		return "", false, name, value, true
	}
	return "", false, "", "", false
}
