package fonts

import "testing"

func TestLoadDefaults(t *testing.T) {
	if err := LoadDefaults(); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range []FontName{Regular, Bold, Title, Small} {
		if name.Get() == nil {
			t.Errorf("font %s missing", name)
		}
	}
}

func TestGetUnknownFontPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown font")
		}
	}()
	FontName("nope").Get()
}
