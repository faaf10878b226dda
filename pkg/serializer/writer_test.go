package serializer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	defer w.Close()

	assert.NoError(t, w.Serialize(context.Background(), sample{Name: "a", Count: 2}))
	assert.Contains(t, buf.String(), `"name": "a"`)
	assert.Contains(t, buf.String(), `"count": 2`)
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	defer w.Close()

	assert.NoError(t, w.Serialize(context.Background(), sample{Name: "a", Count: 2}))
	assert.Contains(t, buf.String(), "name: a")
	assert.Contains(t, buf.String(), "count: 2")
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)
	defer w.Close()

	assert.NoError(t, w.Serialize(context.Background(), sample{Name: "a", Count: 2}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "FIELD"))
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "a")
}

func TestWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	defer w.Close()

	assert.NoError(t, w.Serialize(context.Background(), sample{Name: "a"}))
	assert.Contains(t, buf.String(), `"name": "a"`)
}

func TestFormat_IsUnknown(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("csv").IsUnknown())
	assert.True(t, Format("").IsUnknown())
}
