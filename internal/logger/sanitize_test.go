package logger

import (
	"strings"
	"testing"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain path", "/api/v1/tasks", "/api/v1/tasks"},
		{"empty", "", ""},
		{"control characters stripped", "/tasks\x00\x1b[31m", "/tasks[31m"},
		{"invalid utf8 dropped", "/tasks/\xff\xfe", "/tasks/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizePath(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSanitizePath_Truncates(t *testing.T) {
	t.Parallel()

	long := "/" + strings.Repeat("a", MaxPathLength*2)
	got := SanitizePath(long)
	if len(got) != MaxPathLength+3 {
		t.Errorf("Expected truncation to %d+ellipsis, got length %d", MaxPathLength, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Expected ellipsis suffix")
	}
}
