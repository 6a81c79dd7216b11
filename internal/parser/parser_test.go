package parser

import "testing"

type fakeResolver struct {
	internal    map[string]bool
	listing     map[int]string
	literalInts map[string]bool
	listedNames map[string]bool
	pinned      string
	havePinned  bool
	bookmarks   map[string]string
	selection   []string
	vars        map[string]string
	numericLit  map[string]bool
	skipGlob    map[string]bool
	trashAsRm   bool
	expandBm    bool
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		internal:    map[string]bool{"o": true, "cd": true, "s": true, "tr": true, "mf": true},
		listing:     map[int]string{},
		literalInts: map[string]bool{},
		listedNames: map[string]bool{},
		bookmarks:   map[string]string{},
		vars:        map[string]string{},
		numericLit:  map[string]bool{"mf": true},
		skipGlob:    map[string]bool{},
		expandBm:    true,
	}
}

func (f *fakeResolver) IsInternalCommand(name string) bool { return f.internal[name] }
func (f *fakeResolver) ELN(n int) (string, bool)            { p, ok := f.listing[n]; return p, ok }
func (f *fakeResolver) NumListed() int                      { return len(f.listing) }
func (f *fakeResolver) IsLiteralInteger(tok string) bool    { return f.literalInts[tok] }
func (f *fakeResolver) HasListedName(name string) bool      { return f.listedNames[name] }
func (f *fakeResolver) Pinned() (string, bool)              { return f.pinned, f.havePinned }
func (f *fakeResolver) Bookmark(name string) (string, bool) { p, ok := f.bookmarks[name]; return p, ok }
func (f *fakeResolver) Selection() []string                 { return f.selection }
func (f *fakeResolver) Var(name string) (string, bool)      { v, ok := f.vars[name]; return v, ok }
func (f *fakeResolver) InStdinTempDir() bool                { return false }
func (f *fakeResolver) ResolveSymlink(p string) (string, error) { return p, nil }
func (f *fakeResolver) Glob(pattern string) ([]string, error)   { return nil, nil }
func (f *fakeResolver) ListedNames() []string {
	names := make([]string, 0, len(f.listedNames))
	for n := range f.listedNames {
		names = append(names, n)
	}
	return names
}
func (f *fakeResolver) SkipGlobForCommand(verb string) bool      { return f.skipGlob[verb] }
func (f *fakeResolver) TrashAsRm() bool                          { return f.trashAsRm }
func (f *fakeResolver) ExpandBookmarks() bool                    { return f.expandBm }
func (f *fakeResolver) NumericLiteralCommand(verb string) bool   { return f.numericLit[verb] }
func (f *fakeResolver) Shell(payload string) (string, error)     { return "", nil }

func TestFuseCommandInsertsSpace(t *testing.T) {
	r := newFakeResolver()
	got := fuseCommand("o12", r)
	if got != "o 12" {
		t.Fatalf("got %q, want %q", got, "o 12")
	}
}

func TestFuseCommandSkipsUnknownPrefix(t *testing.T) {
	r := newFakeResolver()
	got := fuseCommand("xy12", r)
	if got != "xy12" {
		t.Fatalf("unknown prefix should not be split, got %q", got)
	}
}

func TestShellPassthroughSemicolon(t *testing.T) {
	res, err := Expand(";ls -la", newFakeResolver())
	if err != nil {
		t.Fatal(err)
	}
	if !res.ShellPassthrough || res.ShellLine != "ls -la" {
		t.Fatalf("got %+v", res)
	}
}

func TestVarAssignmentRecorded(t *testing.T) {
	res, err := Expand("FOO=bar", newFakeResolver())
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsVarAssignment || res.VarName != "FOO" || res.VarValue != "bar" {
		t.Fatalf("got %+v", res)
	}
}

func TestSelExpandsSelectionAndFailsWhenEmpty(t *testing.T) {
	r := newFakeResolver()
	r.selection = []string{"/a", "/b"}
	res, err := Expand("o sel", r)
	if err != nil {
		t.Fatal(err)
	}
	seg := res.Segments[0]
	if len(seg.Argv) != 3 || !seg.SelIsLast {
		t.Fatalf("got %+v", seg)
	}

	r2 := newFakeResolver()
	if _, err := Expand("o sel", r2); err == nil {
		t.Fatal("expected error for empty selection")
	}
}

func TestELNExpansion(t *testing.T) {
	r := newFakeResolver()
	r.listing[3] = "/home/u/file.txt"
	res, err := Expand("o 3", r)
	if err != nil {
		t.Fatal(err)
	}
	seg := res.Segments[0]
	if len(seg.Argv) != 2 || seg.Argv[1] != "/home/u/file.txt" {
		t.Fatalf("got %+v", seg)
	}
}

func TestELNDisambiguationError(t *testing.T) {
	r := newFakeResolver()
	r.listing[3] = "/home/u/file.txt"
	r.literalInts["3"] = true
	if _, err := Expand("o 3", r); err == nil {
		t.Fatal("expected disambiguation error")
	}
}

func TestNumericLiteralCommandSkipsELNExpansion(t *testing.T) {
	r := newFakeResolver()
	res, err := Expand("mf 50", r)
	if err != nil {
		t.Fatal(err)
	}
	seg := res.Segments[0]
	if seg.Argv[1] != "50" {
		t.Fatalf("mf should keep numeric literal, got %+v", seg)
	}
}

func TestRangeExpansion(t *testing.T) {
	r := newFakeResolver()
	r.listing[1] = "/a"
	r.listing[2] = "/b"
	r.listing[3] = "/c"
	res, err := Expand("o 1-3", r)
	if err != nil {
		t.Fatal(err)
	}
	seg := res.Segments[0]
	if len(seg.Argv) != 4 {
		t.Fatalf("got %+v", seg)
	}
}

func TestPinnedDirToken(t *testing.T) {
	r := newFakeResolver()
	r.pinned, r.havePinned = "/home/u/pinned", true
	res, err := Expand("cd ,", r)
	if err != nil {
		t.Fatal(err)
	}
	if res.Segments[0].Argv[1] != "/home/u/pinned" {
		t.Fatalf("got %+v", res.Segments[0])
	}
}

func TestTrashAsRmRewrite(t *testing.T) {
	r := newFakeResolver()
	r.trashAsRm = true
	res, err := Expand("r foo", r)
	if err != nil {
		t.Fatal(err)
	}
	if res.Segments[0].Argv[0] != "tr" {
		t.Fatalf("want rewritten to tr, got %+v", res.Segments[0])
	}
}

func TestExternalCommandBypassesSubstitution(t *testing.T) {
	r := newFakeResolver()
	res, err := Expand("notacommand sel", r)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Segments[0].External {
		t.Fatalf("unknown verb should be external")
	}
}

func TestChainedCommandsSplitOnSemicolon(t *testing.T) {
	r := newFakeResolver()
	r.selection = []string{"/a"}
	res, err := Expand("cd /tmp ; o sel", r)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("want 2 segments, got %d", len(res.Segments))
	}
	if res.Segments[0].Argv[0] != "cd" || res.Segments[1].Argv[0] != "o" {
		t.Fatalf("got segments %v and %v", res.Segments[0].Argv, res.Segments[1].Argv)
	}
	if res.Segments[1].Conditional {
		t.Fatalf("segment after ';' should not be conditional")
	}
}

func TestWordSplitHonorsQuotes(t *testing.T) {
	words, err := splitWords(`o "my file.txt" 'second one'`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"o", "my file.txt", "second one"}
	if len(words) != len(want) {
		t.Fatalf("got %v", words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("got %v, want %v", words, want)
		}
	}
}

func TestWordSplitPreservesCommandSubstitution(t *testing.T) {
	words, err := splitWords("o $(echo a b) rest")
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 || words[1] != "$(echo a b)" {
		t.Fatalf("got %v", words)
	}
}
