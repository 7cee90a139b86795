package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha256Base64URL(t *testing.T) {
	// sha256("1234") в base64url без паддинга
	assert.Equal(t, "A6xnQhbz4Vx2HuGl4lXwZ5U2I8iziLRFnhP5eNfIRvQ", Sha256Base64URL("1234"))
	assert.NotEqual(t, Sha256Base64URL("1234"), Sha256Base64URL("1235"))
	assert.NotContains(t, Sha256Base64URL("x"), "=")
}
