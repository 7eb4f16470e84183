package email

import (
	"bytes"
	"fmt"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every declared template must exist in the embedded FS and render
// with its preview data. Catches broken embeds and template syntax at
// test time instead of on the first send.
func TestTemplatesRenderWithPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(name, func(t *testing.T) {
			tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", name))
			require.NoError(t, err)

			var body bytes.Buffer
			require.NoError(t, tmpl.Execute(&body, data))
			assert.NotEmpty(t, body.String())
		})
	}
}

func TestFormReceivedTemplateIncludesSubmission(t *testing.T) {
	tmpl, err := template.ParseFS(templateFS, "templates/form_received.html")
	require.NoError(t, err)

	var body bytes.Buffer
	require.NoError(t, tmpl.Execute(&body, map[string]string{
		"EntryID":    "12",
		"CustomerID": "42",
		"Comment":    "interested in a quote",
	}))

	rendered := body.String()
	assert.Contains(t, rendered, "12")
	assert.Contains(t, rendered, "42")
	assert.Contains(t, rendered, "interested in a quote")
}
