package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beeport/incentiviz/types"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"success", nil, 0},
		{"connection failure", types.NewConnectionError("localhost", errors.New("refused")), ExitConnection},
		{"database failure", types.NewDatabaseError("query events", errors.New("reset")), ExitConnection},
		{"no data", types.NewNoDataError(), ExitNoData},
		{"export failure", types.NewExportError("/bad/path.png", errors.New("denied")), ExitExport},
		{"render failure", types.NewRenderError("encode", nil), ExitExport},
		{"config failure", types.NewConfigError("log scale on zero", nil), ExitGeneric},
		{"wrapped no data", fmt.Errorf("pipeline: %w", types.NewNoDataError()), ExitNoData},
		{"plain error", errors.New("boom"), ExitGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}
