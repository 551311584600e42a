package browser

import "testing"

func TestOpenRejectsNonHTTP(t *testing.T) {
	tests := []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com",
		"",
	}

	for _, u := range tests {
		if err := Open(u); err == nil {
			t.Errorf("Open(%q): expected error, got nil", u)
		}
	}
}
