package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// The fixed instructional prompt. The output format below is what the
// extractor's label table is matched against.
const analysisPrompt = `あなたは透析患者の食事管理を支援する専門の栄養士AIです。
渡された食事の画像を解析し、以下の情報を日本語で出力してください。

【重要：情報ソースの優先順位】
1. **添付の「食品成分表」PDF**: 記述があれば最優先で使用してください。
2. **Google検索**: コンビニ商品、チェーン店メニューなど、PDFにない商品は積極的にWeb検索で栄養成分を探してください。
3. **推定**: 上記で見つからない場合は、あなたの知識に基づいて推定してください。

出力フォーマット:
## 料理名: [推定される料理名]
(※参照元: 成分表PDF / Web検索 / 推定 のいずれかを記載)

## 推定栄養素 (1食あたり)
- **エネルギー**: [数値] kcal
- **タンパク質**: [数値] g
- **塩分相当量**: [数値] g
- **カリウム**: [数値] mg
- **リン**: [数値] mg
- **水分量**: [数値] ml (推定)

## 透析患者へのアドバイス
[この食事における注意点や、透析患者が食べる際のアドバイスを簡潔に]
`

type GeminiService struct {
	apiKey     string
	model      string
	client     *http.Client
	refFileURI string // uploaded 食品成分表 PDF, "" when running without it
}

// NewGeminiService reads credentials from the environment and, when the
// reference nutrition-facts PDF is present next to the binary, uploads it
// once so every analysis can ground on it. Missing PDF just means the
// service runs in estimation-only mode.
func NewGeminiService() *GeminiService {
	s := &GeminiService{
		apiKey: strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		model:  os.Getenv("GEMINI_MODEL"),
		client: &http.Client{Timeout: 60 * time.Second},
	}
	if s.model == "" {
		s.model = "gemini-2.5-flash"
	}

	pdfPath := os.Getenv("REFERENCE_PDF")
	if pdfPath == "" {
		pdfPath = "食品成分表.pdf"
	}
	if uri, err := s.uploadReferencePDF(pdfPath); err != nil {
		log.Printf("reference PDF not attached (estimation mode): %v", err)
	} else {
		s.refFileURI = uri
	}
	return s
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type fileData struct {
	MimeType string `json:"mime_type"`
	FileURI  string `json:"file_uri"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
	FileData   *fileData   `json:"file_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []geminiContent  `json:"contents"`
	Tools    []map[string]any `json:"tools,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeMealPhoto sends the photo with the fixed prompt (plus the reference
// PDF and the Google Search tool) and returns the concatenation of all
// text-bearing parts of the answer.
func (s *GeminiService) AnalyzeMealPhoto(ctx context.Context, mimeType string, imageBase64 string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY not set")
	}

	parts := []geminiPart{
		{Text: analysisPrompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: imageBase64}},
	}
	if s.refFileURI != "" {
		parts = append(parts, geminiPart{
			FileData: &fileData{MimeType: "application/pdf", FileURI: s.refFileURI},
		})
	}

	req := generateContentRequest{
		Contents: []geminiContent{{Parts: parts}},
		Tools:    []map[string]any{{"google_search": map[string]any{}}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	u := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.model, s.apiKey,
	)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", s.friendlyAPIError(resp.StatusCode, string(raw))
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode Gemini response: %w", err)
	}

	var sb strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("Gemini returned no text")
	}
	return sb.String(), nil
}

// friendlyAPIError keeps the user-facing messages the app has always shown
// for the two failure modes people actually hit.
func (s *GeminiService) friendlyAPIError(status int, body string) error {
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("短時間に多くのリクエストを送ったため、一時的に利用が制限されています。1〜2分待ってから再試行してください。")
	case http.StatusNotFound:
		return fmt.Errorf("モデル %s が見つかりませんでした。APIキーが正しいか確認してください。", s.model)
	default:
		return fmt.Errorf("Gemini API error (status %d): %s", status, body)
	}
}

type fileUploadResponse struct {
	File struct {
		Name string `json:"name"`
		URI  string `json:"uri"`
	} `json:"file"`
}

func (s *GeminiService) uploadReferencePDF(path string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY not set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("https://generativelanguage.googleapis.com/upload/v1beta/files?key=%s", s.apiKey)
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("X-Goog-Upload-Protocol", "raw")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload reference PDF: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("reference PDF upload failed (status %d): %s", resp.StatusCode, raw)
	}

	var out fileUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	log.Printf("reference PDF uploaded as %s", out.File.Name)
	return out.File.URI, nil
}
