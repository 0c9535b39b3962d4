package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessRequestRaw(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"guess":"42"}`, "42"},
		{`{"guess":42}`, "42"},
		{`{"guess":" abc "}`, " abc "},
		{`{"guess":4.5}`, "4.5"},
		{`{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req GuessRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Raw())
		})
	}
}
