package trace

import (
	"context"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if !strings.HasPrefix(id, "t_") {
		t.Errorf("id = %q, want t_ prefix", id)
	}
	if len(id) != 2+32 {
		t.Errorf("id length = %d, want 34", len(id))
	}

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate trace ID: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := FromContext(ctx); got != "" {
		t.Errorf("FromContext(empty) = %q, want empty", got)
	}

	ctx = WithTraceID(ctx, "t_abc")
	if got := FromContext(ctx); got != "t_abc" {
		t.Errorf("FromContext() = %q, want %q", got, "t_abc")
	}
}
