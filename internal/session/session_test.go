package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ou2sema/Playwright-framework/internal/config"
)

func TestOpenRejectsUnsupportedBrowser(t *testing.T) {
	profile := config.Profile{BrowserName: "netscape"}
	s := New(profile)

	err := s.Open()
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Contains(t, sessErr.Error(), "netscape")
}

func TestCloseWithoutOpenIsNoOp(t *testing.T) {
	s := New(config.Profile{})
	// Tolerant of teardown on a session that never opened, and of
	// being called repeatedly.
	s.Close()
	s.Close()
}

func TestCaptureArtifactWithoutPage(t *testing.T) {
	s := New(config.Profile{})
	png, ok := s.CaptureArtifact("anything")
	assert.False(t, ok)
	assert.Nil(t, png)
}

func TestScenarioBag(t *testing.T) {
	s := New(config.Profile{})

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("case", "TC-LOGIN-001")
	s.Put("attempts", 3)

	v, ok := s.Get("case")
	require.True(t, ok)
	assert.Equal(t, "TC-LOGIN-001", v)

	s.Delete("case")
	_, ok = s.Get("case")
	assert.False(t, ok)

	// Unrelated keys survive deletes.
	v, ok = s.Get("attempts")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestProfileAccessor(t *testing.T) {
	profile := config.Resolve("staging")
	s := New(profile)
	assert.Equal(t, "staging", s.Profile().Environment)
}
