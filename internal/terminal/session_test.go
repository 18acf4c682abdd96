package terminal

import "testing"

func TestSession_StartsWithBanner(t *testing.T) {
	s := NewSession()
	entries := s.Entries()
	if len(entries) != 1 || entries[0].Command != "" {
		t.Fatalf("Entries() = %+v, want banner only", entries)
	}
	if s.Lines()[0] != "Welcome to Kshitij's Portfolio Terminal" {
		t.Fatalf("Lines()[0] = %q", s.Lines()[0])
	}
}

func TestSession_RunAppendsWithPrompt(t *testing.T) {
	s := NewSession()
	s.Run("about")
	lines := s.Lines()
	want := Prompt + " about"
	found := false
	for _, l := range lines {
		if l == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("Lines() missing %q: %q", want, lines)
	}
	if len(s.Entries()) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(s.Entries()))
	}
}

func TestSession_ClearResetsScrollback(t *testing.T) {
	s := NewSession()
	s.Run("help")
	s.Run("clear")
	if len(s.Entries()) != 0 {
		t.Fatalf("Entries() after clear = %+v", s.Entries())
	}
	s.Run("contact")
	if len(s.Entries()) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(s.Entries()))
	}
}

func TestSession_BlankInputIgnored(t *testing.T) {
	s := NewSession()
	s.Run("   ")
	if len(s.Entries()) != 1 {
		t.Fatalf("blank input recorded: %+v", s.Entries())
	}
	if _, ok := s.Previous(); ok {
		t.Fatal("blank input entered recall history")
	}
}

func TestSession_Recall(t *testing.T) {
	s := NewSession()
	s.Run("help")
	s.Run("about")

	if got, _ := s.Previous(); got != "about" {
		t.Fatalf("Previous() = %q, want about", got)
	}
	if got, _ := s.Previous(); got != "help" {
		t.Fatalf("Previous() = %q, want help", got)
	}
	if _, ok := s.Previous(); ok {
		t.Fatal("Previous() past oldest returned ok")
	}
	if got, _ := s.Next(); got != "about" {
		t.Fatalf("Next() = %q, want about", got)
	}
	if got, ok := s.Next(); !ok || got != "" {
		t.Fatalf("Next() at newest = %q, %v, want empty line", got, ok)
	}
	if _, ok := s.Next(); ok {
		t.Fatal("Next() past newest returned ok")
	}
}
