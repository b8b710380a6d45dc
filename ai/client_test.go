package ai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGeminiStub 返回固定文本的生成接口桩服务
func newGeminiStub(t *testing.T, statusCode int, text string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if capture != nil {
			*capture = string(body)
		}
		w.WriteHeader(statusCode)
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAskParsesStructuredResponse(t *testing.T) {
	text := `{"summary":"Tập trung thu hồi 45M nợ quá hạn","details":["Nợ nhóm >30 ngày tăng 15%"],"actions":[{"label":"Mở danh sách nợ","type":"navigate","payload":{"module":"billing-ar"}}]}`
	server := newGeminiStub(t, http.StatusOK, text, nil)
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-3-pro-preview")
	resp := client.Ask("Phân tích nợ quá hạn", map[string]int{"invoices": 4})

	assert.Equal(t, "Tập trung thu hồi 45M nợ quá hạn", resp.Summary)
	assert.Len(t, resp.Details, 1)
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, ActionTypeNavigate, resp.Actions[0].Type)
	assert.Empty(t, resp.RawText)
}

func TestAskToleratesMarkdownFences(t *testing.T) {
	text := "```json\n{\"summary\":\"OK\",\"details\":[],\"actions\":[]}\n```"
	server := newGeminiStub(t, http.StatusOK, text, nil)
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-3-pro-preview")
	resp := client.Ask("câu hỏi", nil)

	assert.Equal(t, "OK", resp.Summary)
	assert.NotNil(t, resp.Details)
	assert.NotNil(t, resp.Actions)
}

func TestAskEmptyQueryReturnsFallbackWithoutCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-3-pro-preview")
	resp := client.Ask("   ", nil)

	assert.False(t, called)
	assert.NotEmpty(t, resp.Summary)
	assert.Empty(t, resp.Actions)
}

func TestAskNetworkFailureReturnsFallback(t *testing.T) {
	// 指向已关闭的服务
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("test-key", server.URL, "gemini-3-pro-preview")
	resp := client.Ask("câu hỏi", nil)

	assert.NotEmpty(t, resp.Summary)
	assert.Empty(t, resp.Details)
	assert.Empty(t, resp.Actions)
}

func TestAskQuotaErrorReturnsFallback(t *testing.T) {
	server := newGeminiStub(t, http.StatusTooManyRequests, "", nil)
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-3-pro-preview")
	resp := client.Ask("câu hỏi", nil)

	assert.NotEmpty(t, resp.Summary)
	assert.Empty(t, resp.Actions)
}

func TestAskUnparseableTextKeepsRawText(t *testing.T) {
	text := "Xin chào, đây là câu trả lời tự do không phải JSON."
	server := newGeminiStub(t, http.StatusOK, text, nil)
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-3-pro-preview")
	resp := client.Ask("câu hỏi", nil)

	assert.Equal(t, text, resp.RawText)
	assert.Empty(t, resp.Actions)
}

func TestAskBoundsLargeContext(t *testing.T) {
	var captured string
	server := newGeminiStub(t, http.StatusOK, `{"summary":"OK","details":[],"actions":[]}`, &captured)
	defer server.Close()

	// 超过16KiB的context会被截断
	huge := make([]string, 0, 4096)
	for i := 0; i < 4096; i++ {
		huge = append(huge, "phòng A101 nợ 3.500.000đ tháng này")
	}

	client := NewClient("test-key", server.URL, "gemini-3-pro-preview")
	resp := client.Ask("câu hỏi", huge)

	assert.Equal(t, "OK", resp.Summary)
	assert.Less(t, len(captured), 64*1024)
	assert.Contains(t, captured, "rút gọn")
}

func TestParseSmartResponseNormalizesNilSlices(t *testing.T) {
	smart, err := parseSmartResponse(`{"summary":"chỉ có kết luận"}`)
	require.NoError(t, err)
	assert.NotNil(t, smart.Details)
	assert.NotNil(t, smart.Actions)
	assert.True(t, strings.HasPrefix(smart.Summary, "chỉ"))
}
