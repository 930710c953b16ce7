package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productPage = `<!DOCTYPE html>
<html>
<head><title>Widget Cloud</title></head>
<body>
<article>
  <h1>Widget Cloud</h1>
  <p>Widget Cloud is a hosted service for building and deploying widgets. Teams use it to
  design, test, and ship interactive widgets to millions of customers around the world
  without managing their own servers or worrying about scaling during traffic spikes.</p>
  <h2>Features</h2>
  <p>Widget Cloud includes a visual editor, automatic deployments, detailed analytics for
  every widget, and integrations with the most popular design tools used by product teams.</p>
  <h2>Plans and pricing</h2>
  <p>The Starter plan is free for small projects. The Business plan adds team management and
  priority support for a monthly fee that depends on the number of active widgets.</p>
  <table>
    <thead><tr><th>Plan</th><th>Price</th></tr></thead>
    <tbody>
      <tr><td>Starter</td><td>$0</td></tr>
      <tr><td>Business</td><td>$49</td></tr>
    </tbody>
  </table>
</article>
</body>
</html>`

func TestLocalTransport_Send(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(productPage))
	}))
	defer srv.Close()

	transport, err := NewLocalTransport(models.LocalConfig{
		CacheDir:  t.TempDir(),
		CacheTTL:  time.Hour,
		UserAgent: "wce-test",
		MaxChars:  2000,
	}, discard)
	require.NoError(t, err)
	client := NewClient(transport, models.DefaultAgentID, discard)

	req := Request{Extraction: &models.ExtractionRequest{
		URL:        srv.URL + "/widgets",
		Parameters: []string{"Features", "Pricing", "FAQs"},
		Format:     models.FormatTable,
	}}
	res := client.Call(context.Background(), req)
	require.True(t, res.Success, res.Response.Message)

	result, err := res.Response.AgentResult()
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/widgets"}, result.URLsProcessed)
	require.Len(t, result.ExtractedData, 1)

	fields := result.ExtractedData[0].ExtractedFields
	features, ok := fields.Get("Features")
	require.True(t, ok)
	assert.Contains(t, features, "visual editor")
	pricing, ok := fields.Get("Pricing")
	require.True(t, ok)
	assert.Contains(t, pricing, "Starter plan")
	_, ok = fields.Get("FAQs")
	assert.False(t, ok, "no FAQ section on the page")
	lang, _ := fields.Get("language")
	assert.Equal(t, "English", lang)
	_, ok = fields.Get("keywords")
	assert.True(t, ok)
	siteType, _ := fields.Get("site_type")
	assert.Equal(t, "commercial", siteType)
	category, _ := fields.Get("category")
	assert.Equal(t, "general", category)

	require.Len(t, result.StructuredTable, 2)
	assert.Equal(t, []string{"Plan", "Price"}, result.StructuredTable[0].Keys())
	price, _ := result.StructuredTable[1].Get("Price")
	assert.Equal(t, "$49", price)

	// The second call is served from the page cache.
	res = client.Call(context.Background(), req)
	require.True(t, res.Success)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLocalTransport_RequiresExtraction(t *testing.T) {
	transport, err := NewLocalTransport(models.LocalConfig{}, discard)
	require.NoError(t, err)

	res := NewClient(transport, models.DefaultAgentID, discard).Call(context.Background(), Request{Message: "free text"})
	assert.False(t, res.Success)
}

func TestLocalTransport_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	transport, err := NewLocalTransport(models.LocalConfig{}, discard)
	require.NoError(t, err)

	res := NewClient(transport, models.DefaultAgentID, discard).Call(context.Background(), Request{
		Extraction: &models.ExtractionRequest{URL: srv.URL, Parameters: []string{"Pricing"}},
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Response.Message, "404")
}

func TestHeadingMatches(t *testing.T) {
	tests := []struct {
		heading, param string
		want           bool
	}{
		{"Frequently asked questions (FAQ)", "FAQs", true},
		{"Plans and pricing", "Pricing", true},
		{"Key Features", "Features", true},
		{"About us", "Pricing", false},
		{"Anything", "  ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, headingMatches(tt.heading, tt.param), "%q vs %q", tt.heading, tt.param)
	}
}

func TestTableRecords(t *testing.T) {
	records := tableRecords([]*models.Table{
		{Rows: [][]string{{"no", "headers"}}},
		{Headers: []string{"Plan", ""}, Rows: [][]string{{"Pro", "$30", "extra"}, {"Free"}}},
	})

	require.Len(t, records, 2)
	assert.Equal(t, []string{"Plan", "Column 2"}, records[0].Keys())
	v, _ := records[1].Get("Column 2")
	assert.Equal(t, "", v)
}
