package parser

import (
	"regexp"
	"strconv"
	"strings"

	"fman/internal/pathutil"
)

// substituteArgs implements pass (f) across an already word-split
// argv, returning the expanded argv and whether "sel" was used as the
// final argument.
func substituteArgs(verb string, argv []string, r Resolver) ([]string, bool, error) {
	var out []string
	selIsLast := false

	for i, tok := range argv {
		isLast := i == len(argv)-1

		expanded, used, err := substituteWord(verb, tok, r)
		if err != nil {
			return nil, false, err
		}
		if used == tokenSel {
			selIsLast = isLast
		}
		out = append(out, expanded...)
	}
	return out, selIsLast, nil
}

type tokenKind int

const (
	tokenPlain tokenKind = iota
	tokenSel
)

func substituteWord(verb, tok string, r Resolver) ([]string, tokenKind, error) {
	if fb, ok := pathutil.Fastback(tok); ok {
		return []string{fb}, tokenPlain, nil
	}
	switch {
	case tok == "":
		return []string{tok}, tokenPlain, nil

	case tok == ",":
		if p, ok := r.Pinned(); ok {
			return []string{p}, tokenPlain, nil
		}
		return nil, tokenPlain, &Error{Reason: "no pinned directory"}

	case tok == "sel":
		sel := r.Selection()
		if len(sel) == 0 {
			return nil, tokenPlain, &Error{Reason: "no selected files"}
		}
		escaped := make([]string, len(sel))
		for i, p := range sel {
			escaped[i] = pathutil.Escape(p)
		}
		return escaped, tokenSel, nil

	case strings.HasPrefix(tok, "$") && len(tok) > 1 && isLetter(tok[1]):
		name := tok[1:]
		if v, ok := r.Var(name); ok {
			return []string{v}, tokenPlain, nil
		}
		return []string{tok}, tokenPlain, nil

	case isRange(tok):
		return expandRange(tok, r)

	case isAllDigits(tok) && !r.NumericLiteralCommand(verb):
		n, _ := strconv.Atoi(tok)
		if r.IsLiteralInteger(tok) {
			return nil, tokenPlain, &Error{Reason: "ambiguous: " + tok + " is both an ELN and a file name; prefix with ';' to use the file name"}
		}
		path, ok := r.ELN(n)
		if !ok {
			return nil, tokenPlain, &Error{Reason: "no such ELN: " + tok}
		}
		return []string{pathutil.Escape(path)}, tokenPlain, nil

	default:
		if r.ExpandBookmarks() && !r.HasListedName(tok) {
			if p, ok := r.Bookmark(tok); ok {
				return []string{p}, tokenPlain, nil
			}
		}
		return []string{tok}, tokenPlain, nil
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isRange(tok string) bool {
	idx := strings.IndexByte(tok, '-')
	if idx <= 0 || idx == len(tok)-1 {
		return false
	}
	return isAllDigits(tok[:idx]) && isAllDigits(tok[idx+1:])
}

func expandRange(tok string, r Resolver) ([]string, tokenKind, error) {
	idx := strings.IndexByte(tok, '-')
	n, _ := strconv.Atoi(tok[:idx])
	m, _ := strconv.Atoi(tok[idx+1:])
	if n > m {
		n, m = m, n
	}
	var out []string
	for i := n; i <= m; i++ {
		path, ok := r.ELN(i)
		if !ok {
			return nil, tokenPlain, &Error{Reason: "range contains invalid ELN: " + strconv.Itoa(i)}
		}
		out = append(out, pathutil.Escape(path))
	}
	return out, tokenPlain, nil
}

// internalExpand implements pass (g): glob, command/parameter
// substitution, and regex expansion, skipped entirely for external
// commands.
func internalExpand(verb string, argv []string, r Resolver) ([]string, error) {
	var out []string
	skipGlob := r.SkipGlobForCommand(verb)

	for _, tok := range argv {
		expanded, err := expandSubstitutions(tok, r)
		if err != nil {
			return nil, err
		}

		if !skipGlob && hasGlobMeta(expanded) {
			matches, err := r.Glob(expanded)
			if err == nil && len(matches) > 0 {
				out = append(out, matches...)
				continue
			}
		}

		if !looksLikePath(expanded) && hasRegexMeta(expanded) {
			if re, err := regexp.Compile(expanded); err == nil {
				var matched []string
				for _, name := range r.ListedNames() {
					if re.MatchString(name) {
						matched = append(matched, name)
					}
				}
				if len(matched) > 0 {
					out = append(out, matched...)
					continue
				}
			}
		}

		out = append(out, expanded)
	}
	return out, nil
}

// expandSubstitutions resolves "$(...)", "${...}", and "`...`"
// payloads through the shell, and tilde-expands a leading "~".
func expandSubstitutions(tok string, r Resolver) (string, error) {
	tok = expandTilde(tok)

	for {
		start, open, close := findSubstitution(tok)
		if start < 0 {
			return tok, nil
		}

		var end int
		var ok bool
		if open == '`' {
			rel := strings.IndexByte(tok[start+1:], '`')
			if rel < 0 {
				return tok, nil
			}
			end, ok = start+1+rel, true
		} else {
			end, ok = matchingClose(tok, start+1, open, close)
		}
		if !ok {
			return tok, nil
		}

		payload := tok[start+1 : end]
		result, err := r.Shell(payload)
		if err != nil {
			return "", err
		}
		tok = tok[:start] + result + tok[end+1:]
	}
}

func findSubstitution(tok string) (start int, open, close byte) {
	for i := 0; i < len(tok); i++ {
		if tok[i] == '$' && i+1 < len(tok) && (tok[i+1] == '(' || tok[i+1] == '{') {
			return i, tok[i+1], closeFor(tok[i+1])
		}
		if tok[i] == '`' {
			end := strings.IndexByte(tok[i+1:], '`')
			if end >= 0 {
				return i, '`', '`'
			}
		}
	}
	return -1, 0, 0
}

func expandTilde(tok string) string {
	if tok == "~" {
		return pathutil.UserHome()
	}
	if strings.HasPrefix(tok, "~/") {
		return pathutil.UserHome() + tok[1:]
	}
	return tok
}

func hasGlobMeta(tok string) bool {
	return strings.ContainsAny(tok, "*?[{")
}

func hasRegexMeta(tok string) bool {
	return strings.ContainsAny(tok, ".+^$|()")
}

func looksLikePath(tok string) bool {
	return strings.Contains(tok, "/") || tok == "." || tok == ".."
}
