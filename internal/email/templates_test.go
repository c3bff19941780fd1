package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplatesLoaded(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)

	assert.Equal(t, []string{
		TemplateEmailVerification,
		TemplatePasswordReset,
		TemplateProposalNotification,
	}, tm.TemplateNames())
}

func TestRenderProposalNotification(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateProposalNotification, TemplateData{
		"CampaignTitle":  "Summer <Promo>",
		"InfluencerName": "Ana",
		"Link":           "http://localhost:3000/proposals",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Campaign: Summer &lt;Promo&gt;")
	assert.Contains(t, html, "<strong>Ana</strong>")
	assert.Contains(t, html, `href="http://localhost:3000/proposals"`)
}

func TestRenderErrors(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)

	// missing keys are an error, not an empty link
	_, err = tm.Render(TemplatePasswordReset, TemplateData{})
	assert.Error(t, err)
}
