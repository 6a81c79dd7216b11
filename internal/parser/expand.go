package parser

import "strings"

// expandFull drives the full ordered pass pipeline over one raw line.
func expandFull(line string, r Resolver) (*Result, error) {
	fused := fuseCommand(line, r)

	if shellLine, isShell, varName, varValue, isVar := shellPassthrough(fused); isShell || isVar {
		if isVar {
			return &Result{IsVarAssignment: true, VarName: varName, VarValue: varValue}, nil
		}
		return &Result{ShellPassthrough: true, ShellLine: shellLine}, nil
	}

	chain := splitTopLevel(fused)
	anyInternal := false
	for _, seg := range chain {
		verb := firstToken(seg.text)
		if verb != "" && r.IsInternalCommand(verb) {
			anyInternal = true
			break
		}
	}

	if len(chain) == 1 || !anyInternal {
		seg, err := expandSegment(strings.TrimSpace(fused), r)
		if err != nil {
			return nil, err
		}
		return &Result{Segments: []Segment{seg}}, nil
	}

	result := &Result{}
	for _, c := range chain {
		seg, err := expandSegment(strings.TrimSpace(c.text), r)
		if err != nil {
			return nil, err
		}
		seg.Conditional = c.op == "&&"
		result.Segments = append(result.Segments, seg)
	}
	return result, nil
}

func firstToken(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}

// expandSegment runs passes (d) through (g) on a single command line.
func expandSegment(line string, r Resolver) (Segment, error) {
	words, err := splitWords(line)
	if err != nil {
		return Segment{}, err
	}
	if len(words) == 0 {
		return Segment{Argv: words}, nil
	}

	verb := words[0]
	if verb == "r" && r.TrashAsRm() {
		verb = "tr"
		words[0] = "tr"
	}

	if !r.IsInternalCommand(verb) {
		return Segment{Argv: words, External: true, RawLine: line}, nil
	}

	argv, selIsLast, err := substituteArgs(verb, words, r)
	if err != nil {
		return Segment{}, err
	}

	argv, err = internalExpand(verb, argv, r)
	if err != nil {
		return Segment{}, err
	}

	return Segment{Argv: argv, SelIsLast: selIsLast}, nil
}
