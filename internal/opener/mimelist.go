package opener

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// Rule is one parsed mimelist.cfm line: KEY=APP1;APP2;… where KEY is
// either "E:<regex>" (extension match) or a MIME-type regex.
type Rule struct {
	ByExtension bool
	Pattern     *regexp.Regexp
	Apps        []string
}

// LoadMimeList parses a mimelist.cfm file, skipping blank and "#"
// lines. A missing file yields no rules, not an error.
func LoadMimeList(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rules []Rule
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		key, appsField := line[:idx], line[idx+1:]

		byExt := false
		if strings.HasPrefix(key, "E:") {
			byExt = true
			key = key[2:]
		}
		re, err := regexp.Compile(key)
		if err != nil {
			continue
		}
		apps := strings.Split(appsField, ";")
		for i := range apps {
			apps[i] = strings.TrimSpace(apps[i])
		}
		rules = append(rules, Rule{ByExtension: byExt, Pattern: re, Apps: apps})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}
