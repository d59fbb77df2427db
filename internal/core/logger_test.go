package core_test

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/julien-sobczak/nbfmt/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := core.NewLogger()

	// Silent by default, except for warnings.
	logger.Infof("info message")
	logger.Debugf("debug message")
	logger.Tracef("trace message")
	assert.Empty(t, buf.String())
	logger.Warnf("warn message")
	assert.Contains(t, buf.String(), "warn message")

	buf.Reset()
	logger.SetVerboseLevel(core.VerboseInfo)
	logger.Infof("info message")
	logger.Debugf("debug message")
	logger.Tracef("trace message")
	assert.Contains(t, buf.String(), "info message")
	assert.NotContains(t, buf.String(), "debug message")
	assert.NotContains(t, buf.String(), "trace message")

	buf.Reset()
	logger.SetVerboseLevel(core.VerboseTrace)
	logger.Infof("info message")
	logger.Debugf("debug message")
	logger.Tracef("trace message")
	assert.Contains(t, buf.String(), "info message")
	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "trace message")
}
