package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/deringirish/PHMS/config"
	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

var (
	ErrExtractorNotConfigured = errors.New("gemini API key not configured")
	ErrExtractionFailed       = errors.New("failed to extract data from report")
	ErrMalformedExtraction    = errors.New("failed to parse Gemini response as JSON")
)

// TimestampKey carries the report date in an extraction result.
const TimestampKey = "timestamp"

// Report is an uploaded lab report as sent to the extractor.
type Report struct {
	Data     []byte
	MimeType string
}

// ReportExtractor reads lab values out of a report document. Results are
// keyed by metric name; numeric values are float64 and TimestampKey, when
// present, holds the report date as text.
type ReportExtractor interface {
	Extract(ctx context.Context, report Report) (map[string]interface{}, error)
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiService struct {
	cfg        config.GeminiConfig
	httpClient *http.Client
	log        *logrus.Logger
}

func NewGeminiService(cfg config.GeminiConfig, log *logrus.Logger) ReportExtractor {
	return &geminiService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

func (s *geminiService) Extract(ctx context.Context, report Report) (map[string]interface{}, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrExtractorNotConfigured
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: report.MimeType,
					Data:     base64.StdEncoding.EncodeToString(report.Data),
				}},
				{Text: extractionPrompt},
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Model, url.QueryEscape(s.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warnf("Failed to call Gemini: %+v", err)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		s.log.Warnf("Gemini returned status %d: %s", resp.StatusCode, truncate(string(body), 512))
		return nil, fmt.Errorf("%w: status %d", ErrExtractionFailed, resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrExtractionFailed)
	}

	var text strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return ParseExtraction(text.String())
}

// ParseExtraction turns the model's reply into a value map: it unwraps a
// fenced code block, drops null and empty values and coerces numerics.
// Values that are not numeric are kept as they are.
func ParseExtraction(text string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExtraction, err)
	}

	result := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		if key == TimestampKey {
			result[key] = value
			continue
		}
		if f, ok := metric.ToFloat(value); ok {
			result[key] = f
			continue
		}
		result[key] = value
	}
	return result, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	marker := "```json"
	start := strings.Index(text, marker)
	if start < 0 {
		marker = "```"
		start = strings.Index(text, marker)
	}
	if start < 0 {
		return text
	}
	rest := text[start+len(marker):]
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

const extractionPrompt = `You are a medical lab report data extractor. Extract ONLY the following health metrics from the provided lab report.
Return the data as a JSON object. Use null for any values that are not found in the report.

Extract ONLY these fields and ignore all other values:

VITALS:
- bpSystolic (systolic blood pressure in mmHg)
- bpDiastolic (diastolic blood pressure in mmHg)
- heartRate (beats per minute)
- temperature (in Celsius)
- spo2 (oxygen saturation %)
- weight (in kg)
- height (in cm)

DIABETES/GLUCOSE:
- sugarFasting (fasting blood sugar in mg/dL)
- sugarPostMeal (post-meal blood sugar in mg/dL)
- randomBloodSugar (random blood sugar in mg/dL)
- hbA1c (HbA1c percentage)

LIPID PROFILE:
- cholesterolTotal (total cholesterol in mg/dL)
- cholesterolHDL (HDL cholesterol in mg/dL)
- cholesterolLDL (LDL cholesterol in mg/dL)
- triglycerides (in mg/dL)
- vldl (VLDL in mg/dL)

KIDNEY FUNCTION:
- serumCreatinine (in mg/dL)
- bloodUrea (in mg/dL)
- bun (blood urea nitrogen in mg/dL)
- eGFR (estimated GFR in mL/min/1.73m²)

LIVER FUNCTION:
- sgptAlt (SGPT/ALT in U/L)
- sgotAst (SGOT/AST in U/L)
- alkalinePhosphatase (ALP in U/L)
- totalBilirubin (in mg/dL)
- directBilirubin (in mg/dL)
- indirectBilirubin (in mg/dL)

ELECTROLYTES:
- sodium (in mEq/L)
- potassium (in mEq/L)
- chloride (in mEq/L)

HEMATOLOGY (CBC):
- hemoglobin (in g/dL)
- totalLeukocyteCount (WBC in cells/μL)
- plateletCount (in lakhs or x10^3/μL)
- rbcCount (RBC in million/μL)
- pcv (packed cell volume %)
- mcv (mean corpuscular volume in fL)

THYROID:
- tsh (TSH in μIU/mL)
- t3 (T3 in ng/dL)
- t4 (T4 in μg/dL)

VITAMINS:
- vitaminD (in ng/mL)
- vitaminB12 (in pg/mL)

Return ONLY valid JSON in this exact format:
{
  "bpSystolic": null,
  "bpDiastolic": null,
  "heartRate": null,
  ...
}

Extract numeric values only. Include the report date as "timestamp" in ISO format if available.
Do not include any other fields, tests, or markers not listed above.
`
