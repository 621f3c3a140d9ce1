package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscore/backend/internal/domain"
	"github.com/ecoscore/backend/internal/logger"
	"github.com/ecoscore/backend/internal/usecase"
)

const amazonPage = `<html>
<head>
  <title>Bamboo Toothbrush Pack : Amazon.in</title>
  <script>var material = "plastic";</script>
</head>
<body>
  <span id="productTitle">   Bamboo Toothbrush
     Pack of 4 </span>
  <a id="bylineInfo">Visit the GreenSmile Store</a>
  <div id="feature-bullets"><ul>
    <li>Handle made from 100% biodegradable bamboo</li>
    <li>Charcoal infused bristles</li>
  </ul></div>
  <div id="productDescription"><p>Shipped in recyclable cardboard packaging. Cruelty-free and vegan.</p></div>
</body>
</html>`

const flipkartPage = `<html>
<head><title>Organic Cotton Kurta - Buy Online | Flipkart.com</title></head>
<body>
  <h1>Kurta</h1>
  <span class="B_NuCI">Organic Cotton Kurta for Women</span>
  <div class="_2t4dHl">Fabric: 100% organic cotton</div>
  <div class="_2t4dHl">Dyed with natural, chemical-free colours. Handmade by artisans.</div>
</body>
</html>`

const shortPage = `<html><head><title>Mug</title></head><body><p>A mug.</p></body></html>`

func testConfig() PageFetcherConfig {
	return PageFetcherConfig{
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             10,
		MaxRetries:        3,
		RetryBackoff:      time.Millisecond,
	}
}

func newTestFetcher() *PageFetcher {
	return NewPageFetcher(usecase.NewEcoScorer(), NewPlaceholderFetcher(), testConfig(), logger.NewNop())
}

func servePage(t *testing.T, body string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		assert.Equal(t, "EcoScore/2.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewPageFetcher_Defaults(t *testing.T) {
	f := NewPageFetcher(usecase.NewEcoScorer(), nil, PageFetcherConfig{}, nil)

	assert.NotNil(t, f.httpClient)
	assert.NotNil(t, f.rateLimiter)
	assert.NotNil(t, f.fallback)
	assert.Equal(t, 15*time.Second, f.config.Timeout)
	assert.Equal(t, 3, f.config.MaxRetries)
	assert.Equal(t, 3000, f.config.MaxTextLength)
	assert.Equal(t, 100, f.config.MinTextLength)
}

func TestPageFetcher_Amazon(t *testing.T) {
	server := servePage(t, amazonPage, nil)

	result, err := newTestFetcher().FetchAndScore(context.Background(), server.URL+"/amazon/dp/B0TEST")
	require.NoError(t, err)

	assert.Equal(t, "Bamboo Toothbrush Pack of 4", result.Title)
	assert.Equal(t, "Amazon", result.Platform)
	assert.Contains(t, result.Materials, "Bamboo")
	assert.Contains(t, result.PositiveFactors, "Biodegradable")
	assert.NotContains(t, result.NegativeFactors, "Non-recyclable plastic")
	assert.Greater(t, result.Score, 55)
}

func TestPageFetcher_Flipkart(t *testing.T) {
	server := servePage(t, flipkartPage, nil)

	result, err := newTestFetcher().FetchAndScore(context.Background(), server.URL+"/flipkart/p/itm1")
	require.NoError(t, err)

	assert.Equal(t, "Organic Cotton Kurta for Women", result.Title)
	assert.Equal(t, "Flipkart", result.Platform)
	assert.Equal(t, []string{"Organic Cotton"}, result.Materials)
	assert.Equal(t, []string{"No major concerns"}, result.NegativeFactors)
}

func TestPageFetcher_ShortTextFallsBack(t *testing.T) {
	server := servePage(t, shortPage, nil)

	result, err := newTestFetcher().FetchAndScore(context.Background(), server.URL+"/mug")
	assert.ErrorIs(t, err, domain.ErrFallbackResult)
	require.NotNil(t, result)

	assert.Equal(t, 55, result.Score)
	assert.Equal(t, []string{"Not available"}, result.Materials)
	assert.Equal(t, []string{"Visit product page"}, result.Recommendations)
}

func TestPageFetcher_NotFoundDoesNotRetry(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher()
	_, err := f.fetchPage(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))

	result, err := f.FetchAndScore(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrFallbackResult)
	assert.Contains(t, err.Error(), "status 404")
	require.NotNil(t, result)
	assert.Equal(t, []string{"Not available"}, result.Materials)
}

func TestPageFetcher_ServerErrorRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(amazonPage))
	}))
	defer server.Close()

	body, err := newTestFetcher().fetchPage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "productTitle")
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestPageFetcher_RetriesExhausted(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestFetcher().fetchPage(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "status 429")
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestPageFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := newTestFetcher().FetchAndScore(ctx, server.URL)
	assert.ErrorIs(t, err, domain.ErrFallbackResult)
	require.NotNil(t, result)
	assert.Equal(t, []string{"Check page"}, result.PositiveFactors)
}

func TestPageFetcher_RecoversAfterServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(amazonPage))
	}))
	defer server.Close()

	f := newTestFetcher()
	productURL := server.URL + "/amazon/dp/B0TEST"

	first, err := f.FetchAndScore(context.Background(), productURL)
	assert.ErrorIs(t, err, domain.ErrFallbackResult)
	assert.Contains(t, err.Error(), "status 503")
	require.NotNil(t, first)
	assert.Equal(t, 55, first.Score)

	second, err := f.FetchAndScore(context.Background(), productURL)
	require.NoError(t, err)
	assert.Contains(t, second.Materials, "Bamboo")
	assert.Equal(t, int32(4), atomic.LoadInt32(&hits))
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 500 * time.Millisecond},
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, exponentialBackoff(500*time.Millisecond, tt.attempt))
	}
}

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, "Amazon", detectPlatform("https://www.AMAZON.in/dp/B0"))
	assert.Equal(t, "Flipkart", detectPlatform("https://www.flipkart.com/p/itm"))
	assert.Equal(t, "Unknown", detectPlatform("https://shop.example.com/p/1"))
}

func TestExtractProduct_GenericPage(t *testing.T) {
	page := `<html><head><title>Linen Shirt</title><style>.x{color:red}</style></head>
<body>
<h2>Linen   Shirt</h2>
<p>Woven from European flax.</p>
</body></html>`

	product, err := extractProduct("https://shop.example.com/p/1", strings.NewReader(page), 3000)
	require.NoError(t, err)

	assert.Equal(t, "Linen Shirt", product.Title)
	assert.Equal(t, "Unknown", product.Platform)
	assert.Equal(t, "linen shirt  linen shirt woven from european flax. linen shirt", product.Text)
}

func TestExtractProduct_TruncatesDescription(t *testing.T) {
	page := `<html><body><div id="productDescription">` + strings.Repeat("wool ", 1000) + `</div></body></html>`

	product, err := extractProduct("https://www.amazon.in/dp/B0", strings.NewReader(page), 50)
	require.NoError(t, err)

	assert.Equal(t, "Unknown Product", product.Title)
	// "" + " " + "" + " " + 50 characters of description
	assert.Equal(t, 2+50, len(product.Text))
	assert.NotContains(t, product.Text, "unknown product")
}

func TestPlaceholderFetcher(t *testing.T) {
	p := NewPlaceholderFetcher()

	result, err := p.FetchAndScore(context.Background(), "https://anything.example.com")
	require.NoError(t, err)

	assert.Equal(t, &domain.EcoResult{
		Score:           55,
		Grade:           domain.GradeD,
		Title:           "Unknown",
		Platform:        "Unknown",
		Materials:       []string{"Not available"},
		Certifications:  []string{"None found"},
		PositiveFactors: []string{"Check page"},
		NegativeFactors: []string{"Insufficient info"},
		Recommendations: []string{"Visit product page"},
	}, result)

	other, _ := p.FetchAndScore(context.Background(), "")
	assert.Equal(t, result, other)
}
