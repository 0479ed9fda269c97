package collide

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errs bytes.Buffer
	l := NewDefaultLogger("sim", false)
	l.out = log.New(&out, "", 0)
	l.err = log.New(&errs, "", 0)

	l.Debugf("hidden %d", 1)
	l.Infof("step %d", 2)
	l.Warnf("odd")
	assert.Equal(t, "[sim] INFO: step 2\n", out.String())
	assert.Equal(t, "[sim] WARN: odd\n", errs.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown")
	assert.Contains(t, out.String(), "[sim] DEBUG: shown")
}

func TestOrNop(t *testing.T) {
	l := orNop(nil)
	assert.False(t, l.DebugEnabled())
	l.Errorf("discarded")
}
