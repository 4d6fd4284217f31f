package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashwinyue/strato-tools/internal/catalog"
	"github.com/ashwinyue/strato-tools/internal/service/chat"
	"github.com/ashwinyue/strato-tools/internal/service/file"
	"github.com/ashwinyue/strato-tools/internal/service/session"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "tool not found", err: catalog.ErrToolNotFound, want: http.StatusNotFound},
		{name: "wrapped session not found", err: fmt.Errorf("failed to append message: %w", session.ErrSessionNotFound), want: http.StatusNotFound},
		{name: "empty message", err: chat.ErrEmptyMessage, want: http.StatusBadRequest},
		{name: "logo too large", err: file.ErrLogoTooLarge, want: http.StatusRequestEntityTooLarge},
		{name: "reply canceled", err: fmt.Errorf("%w: %w", chat.ErrReplyCanceled, context.Canceled), want: http.StatusConflict},
		{name: "client gone", err: context.Canceled, want: StatusClientClosedRequest},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
