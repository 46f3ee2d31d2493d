package deepresearch

import (
	"testing"

	"github.com/hupe1980/deepresearch/provider"
	"github.com/hupe1980/deepresearch/research"
	"github.com/hupe1980/deepresearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToDuckDuckGo(t *testing.T) {
	wf, err := New(provider.NewMockProvider("m"))
	require.NoError(t, err)
	assert.NotNil(t, wf)
}

func TestNew_NoClientsFails(t *testing.T) {
	_, err := New(provider.NewMockProvider("m"), func(o *Options) {
		o.DisableDuckDuckGo = true
	})
	assert.ErrorIs(t, err, research.ErrNoSearchClients)
}

func TestNew_CustomClientInjected(t *testing.T) {
	mock := search.NewMockClient("custom")
	wf, err := New(provider.NewMockProvider("m"), func(o *Options) {
		o.DisableDuckDuckGo = true
		o.SearchClients = map[string]search.Client{"custom": mock}
	})
	require.NoError(t, err)
	assert.NotNil(t, wf)
}

func TestNew_InvalidFirecrawlKeyIgnored(t *testing.T) {
	// An empty key means the client is simply not configured, not an error.
	wf, err := New(provider.NewMockProvider("m"), func(o *Options) {
		o.FirecrawlAPIKey = ""
	})
	require.NoError(t, err)
	assert.NotNil(t, wf)
}
