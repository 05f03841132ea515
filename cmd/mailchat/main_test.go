package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTokenPath_Precedence(t *testing.T) {
	t.Setenv("MAILCHAT_TOKEN", "")

	assert.Equal(t, "/from/flag", getTokenPath("/from/flag", "/from/config"))
	assert.Equal(t, "/from/config", getTokenPath("", "/from/config"))

	t.Setenv("MAILCHAT_TOKEN", "/from/env")
	assert.Equal(t, "/from/flag", getTokenPath("/from/flag", "/from/config"))
	assert.Equal(t, "/from/env", getTokenPath("", "/from/config"))
}
