package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// 序列化后的context上限，超出部分截断，避免请求体无界增长
const maxContextBytes = 16 * 1024

// AI动作类型，供前端渲染为可点击建议
const (
	ActionTypeNavigate = "navigate"
	ActionTypeFilter   = "filter"
	ActionTypeModal    = "modal"
	ActionTypeCopy     = "copy"
)

// Action AI建议的下一步动作
type Action struct {
	Label   string                 `json:"label"`
	Type    string                 `json:"type"` // navigate, filter, modal, copy
	Payload map[string]interface{} `json:"payload"`
	Icon    string                 `json:"icon,omitempty"`
}

// SmartResponse AI结构化应答：结论 + 要点 + 动作
type SmartResponse struct {
	Summary string   `json:"summary"`
	Details []string `json:"details"`
	Actions []Action `json:"actions"`
	RawText string   `json:"raw_text,omitempty"` // 解析失败时保留原文
}

// Client 生成式AI网关客户端
// 所有失败(网络/解析/配额)都收敛为兜底应答，不向调用方抛错
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient 创建AI网关客户端
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// getSystemPrompt 固定系统提示词
func (c *Client) getSystemPrompt() string {
	return `Bạn là LeanInn Strategic AI v4.0.
Triết lý: Áp dụng nguyên tắc 80/20 (Pareto) để tinh gọn vận hành nhà trọ.
Nhiệm vụ:
1. Loại bỏ các công việc thừa thải không tạo ra giá trị.
2. Tập trung tối ưu 20% yếu tố (vị trí, loại phòng, đối tượng khách) tạo ra 80% lợi nhuận.
3. Giải quyết bài toán chống thất thoát dòng tiền và tối ưu hóa lấp đầy.

Khi trả lời:
- Phải có dữ liệu và giải pháp hành động ngay.
- Sử dụng mô hình 5W2H khi tư vấn chiến lược.
- Chỉ trả lời bằng một đối tượng JSON theo dạng {"summary": string, "details": [string], "actions": [{"label": string, "type": "navigate"|"filter"|"modal"|"copy", "payload": object, "icon": string}]}.`
}

// Ask 发送用户问题与当前模块数据快照，返回结构化应答
// query去除空白后不能为空，context整体序列化为情境输入
func (c *Client) Ask(query string, context interface{}) *SmartResponse {
	query = strings.TrimSpace(query)
	if query == "" {
		return fallback("Vui lòng nhập câu hỏi trước khi gửi.", "")
	}

	contextJSON := "Lean Dashboard"
	if context != nil {
		data, err := json.Marshal(context)
		if err == nil {
			if len(data) > maxContextBytes {
				data = append(data[:maxContextBytes], []byte(`..."(đã rút gọn)"`)...)
			}
			contextJSON = string(data)
		}
	}

	userContent := fmt.Sprintf("CONTEXT: %s. USER QUERY: %s", contextJSON, query)
	return c.generate(userContent)
}

// AnalyzeBusiness 80/20经营分析：给出3个立即提升利润的关键动作
func (c *Client) AnalyzeBusiness(data interface{}) *SmartResponse {
	snapshot, err := json.Marshal(data)
	if err != nil {
		return fallback("LeanInn AI đang tính toán lộ trình tối ưu cho bạn...", "")
	}
	if len(snapshot) > maxContextBytes {
		snapshot = append(snapshot[:maxContextBytes], []byte(`..."(đã rút gọn)"`)...)
	}
	content := fmt.Sprintf("PHÂN TÍCH 80/20 & CHIẾN LƯỢC TINH GỌN: Dựa trên dữ liệu vận hành nhà trọ sau, hãy đề xuất 3 hành động then chốt để tăng lợi nhuận tức thì: %s", snapshot)
	return c.generate(content)
}

// generateContent请求/响应结构，对应Gemini REST接口
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate 调用一次生成接口并解析结构化应答
func (c *Client) generate(userContent string) *SmartResponse {
	reqBody := generateRequest{
		Contents:          []content{{Parts: []part{{Text: userContent}}}},
		SystemInstruction: &content{Parts: []part{{Text: c.getSystemPrompt()}}},
		GenerationConfig:  &generationConfig{Temperature: 0.1, ResponseMimeType: "application/json"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fallback("Kết nối AI Strategic bị gián đoạn...", "")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fallback("Kết nối AI Strategic bị gián đoạn...", "")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return fallback("Kết nối AI Strategic bị gián đoạn...", "")
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil || len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return fallback("LeanInn AI đang tính toán lộ trình tối ưu cho bạn...", "")
	}

	text := genResp.Candidates[0].Content.Parts[0].Text
	smart, err := parseSmartResponse(text)
	if err != nil {
		// 模型没有按约定返回JSON时保留原文作为兜底
		return fallback("LeanInn AI đang tính toán lộ trình tối ưu cho bạn...", text)
	}
	return smart
}

// parseSmartResponse 解析模型输出，容忍markdown代码块包裹
func parseSmartResponse(text string) (*SmartResponse, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var smart SmartResponse
	if err := json.Unmarshal([]byte(cleaned), &smart); err != nil {
		return nil, err
	}
	if smart.Details == nil {
		smart.Details = []string{}
	}
	if smart.Actions == nil {
		smart.Actions = []Action{}
	}
	return &smart, nil
}

// fallback 构造兜底应答，动作列表置空
func fallback(summary, rawText string) *SmartResponse {
	return &SmartResponse{
		Summary: summary,
		Details: []string{},
		Actions: []Action{},
		RawText: rawText,
	}
}
