package pathutil

import "testing"

func TestEscapeDequoteRoundTrip(t *testing.T) {
	names := []string{
		"plain", "with space", `quote'd`, "semi;colon", "dollar$sign",
		"braces{a,b}", "a&b|c", "tab\ttab",
	}
	for _, n := range names {
		got := Dequote(Escape(n))
		if got != n {
			t.Errorf("Escape/Dequote round trip: got %q, want %q", got, n)
		}
	}
}

func TestURLEncodeDecodeRoundTrip(t *testing.T) {
	paths := []string{
		"/home/user/My Documents/a file.txt",
		"/tmp/100%done.log",
		"/a/b/c",
	}
	for _, p := range paths {
		got := URLDecode(URLEncode(p))
		if got != p {
			t.Errorf("URLEncode/URLDecode round trip: got %q, want %q", got, p)
		}
	}
}

func TestFastback(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantOK  bool
	}{
		{"..", "", false},
		{"...", "../../", true},
		{"....", "../../../", true},
		{"...../rest", "../../../../rest", true},
		{"....rest", "", false},
	}
	for _, c := range cases {
		got, ok := Fastback(c.in)
		if ok != c.wantOK {
			t.Errorf("Fastback(%q) ok=%v, want %v", c.in, ok, c.wantOK)
			continue
		}
		if ok && got != c.want {
			t.Errorf("Fastback(%q)=%q, want %q", c.in, got, c.want)
		}
	}
}

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		0:          "0B",
		1023:       "1023B",
		1024:       "1K",
		1536:       "1.50K",
		1048576:    "1M",
		1073741824: "1G",
	}
	for in, want := range cases {
		if got := HumanSize(in); got != want {
			t.Errorf("HumanSize(%d)=%q, want %q", in, got, want)
		}
	}
}

func TestHomeAbbreviate(t *testing.T) {
	home := "/home/alice"
	if got := HomeAbbreviate(home, home); got != "~" {
		t.Errorf("got %q, want ~", got)
	}
	if got := HomeAbbreviate("/home/alice/src", home); got != "~/src" {
		t.Errorf("got %q, want ~/src", got)
	}
	if got := HomeAbbreviate("/etc", home); got != "/etc" {
		t.Errorf("got %q, want /etc", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	if DisplayWidth("abc") != 3 {
		t.Errorf("ascii width mismatch")
	}
	if DisplayWidth("") != 0 {
		t.Errorf("empty width mismatch")
	}
	// CJK wide rune should count as two columns.
	if w := DisplayWidth("中"); w != 2 {
		t.Errorf("wide rune width=%d, want 2", w)
	}
}
