package version

import "testing"

func TestRelease(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "dev"
	if _, ok := Release(); ok {
		t.Error("dev parsed as a release")
	}

	Version = "v1.4.2"
	v, ok := Release()
	if !ok {
		t.Fatal("v1.4.2 not parsed")
	}
	if v.Minor() != 4 {
		t.Errorf("minor = %d, want 4", v.Minor())
	}
}
