package corrector

import "testing"

func TestSuggestFindsCloseTypo(t *testing.T) {
	candidates := []string{"select", "sort", "selbox", "ws", "jump"}
	got := Suggest("slect", candidates, 3)
	if len(got) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	if got[0] != "select" {
		t.Fatalf("best suggestion = %q, want %q", got[0], "select")
	}
}

func TestSuggestEmptyInputs(t *testing.T) {
	if got := Suggest("", []string{"a"}, 3); got != nil {
		t.Fatalf("expected nil for empty typo, got %v", got)
	}
	if got := Suggest("x", nil, 3); got != nil {
		t.Fatalf("expected nil for empty candidates, got %v", got)
	}
	if got := Suggest("x", []string{"a"}, 0); got != nil {
		t.Fatalf("expected nil for n<=0, got %v", got)
	}
}

func TestSuggestRespectsLimit(t *testing.T) {
	candidates := []string{"cd", "cdd", "cddd", "cdddd"}
	got := Suggest("cd", candidates, 2)
	if len(got) > 2 {
		t.Fatalf("got %d suggestions, want at most 2", len(got))
	}
}
