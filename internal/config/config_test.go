package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", ServerConfig{Host: "127.0.0.1", Port: 8080}.Addr())
	// A blank host binds everywhere.
	assert.Equal(t, "0.0.0.0:8080", ServerConfig{Port: 8080}.Addr())
}
