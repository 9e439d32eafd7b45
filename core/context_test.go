package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressHeaderContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(ctx)))

	wrongType := context.WithValue(ctx, suppressHeaderKey, "yes")
	assert.False(t, shouldSuppressHeader(wrongType))
}

func TestSkipHistoryContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSkipHistory(ctx))
	assert.True(t, shouldSkipHistory(WithSkipHistory(ctx)))
	assert.False(t, shouldSuppressHeader(WithSkipHistory(ctx)))
}
