package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/courseware/internal/ui/output"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(), "NO_COLOR should force Ascii profile")

	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	require.NotNil(t, out)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestNew_Nil(t *testing.T) {
	// Defaults to stderr.
	assert.NotNil(t, output.New(nil))
}

func TestTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := output.Table(
		[]string{"ID", "NAME"},
		[][]string{{"c1", "Go Basics"}, {"c2", "Advanced Go"}},
	)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^\s*ID\s+NAME\s*$`, lines[0])
	assert.Regexp(t, `^\s*c1\s+Go Basics\s*$`, lines[1])
	assert.Regexp(t, `^\s*c2\s+Advanced Go\s*$`, lines[2])
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := output.JSON(&buf, map[string]int{"count": 2})

	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"count\": 2\n}\n", buf.String())
}
