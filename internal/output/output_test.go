package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetVerbose(false)
	})
	return &buf
}

func TestMessages(t *testing.T) {
	buf := capture(t)

	Success("generated")
	Error("failed")
	Info("watching")
	Step("out/orders.xsd")

	out := buf.String()
	assert.Contains(t, out, "✔ generated")
	assert.Contains(t, out, "✘ failed")
	assert.Contains(t, out, "• watching")
	assert.Contains(t, out, "   out/orders.xsd")
}

func TestVerbose(t *testing.T) {
	buf := capture(t)

	Verbose("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Verbose("shown")
	assert.Contains(t, buf.String(), "… shown")
}
