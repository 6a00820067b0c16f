package sl_test

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain error", err: errors.New("something went wrong"), want: "something went wrong"},
		{name: "wrapped error", err: fmt.Errorf("board.ApplyJob: %w", errors.New("job not found")), want: "board.ApplyJob: job not found"},
		{name: "nil error", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := sl.Err(tt.err)
			assert.Equal(t, "error", attr.Key)
			assert.Equal(t, slog.StringValue(tt.want), attr.Value)
		})
	}
}
