package understand

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-recorddesk-be/pkg/llm"
	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

// ConfidenceThreshold is the floor below which a classification is reported
// as ambiguous instead of being acted on.
const ConfidenceThreshold = 0.5

// IntentResult is the normalized outcome of classifying one utterance.
// Ambiguous results carry candidate collections so the conversation layer
// can ask the user to choose, never guess.
type IntentResult struct {
	Operation  string   `json:"operation"`  // CREATE or READ
	Collection string   `json:"collection"` // catalog collection name
	Confidence float32  `json:"confidence"` // 0.0-1.0
	Reasoning  string   `json:"reasoning"`
	Ambiguous  bool     `json:"-"`
	Candidates []string `json:"-"`
	Source     string   `json:"-"` // "llm" or "fallback"
}

// Adapter wraps an LLM provider for intent classification and field
// extraction. Every method degrades to the deterministic fallback when the
// provider fails or returns garbage; callers never see an error.
type Adapter struct {
	provider llm.LLMProvider
	registry *schema.Registry
	logger   *log.Logger
}

// NewAdapter builds an adapter. provider may be nil, in which case every
// call goes straight to the fallback.
func NewAdapter(provider llm.LLMProvider, registry *schema.Registry, logger *log.Logger) *Adapter {
	return &Adapter{
		provider: provider,
		registry: registry,
		logger:   logger,
	}
}

// ClassifyIntent determines the operation and target collection for an
// utterance. It never returns an error: provider failures and unparseable
// output fall back to keyword classification.
func (a *Adapter) ClassifyIntent(ctx context.Context, utterance string) *IntentResult {
	if a.provider == nil {
		return FallbackClassify(a.registry, utterance)
	}

	prompt := a.buildIntentPrompt(utterance)

	response, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		a.logger.Printf("[WARN] intent classification failed, using fallback: %v", err)
		return FallbackClassify(a.registry, utterance)
	}

	result, err := a.parseIntent(response)
	if err != nil {
		a.logger.Printf("[WARN] intent parsing failed, using fallback: %v", err)
		return FallbackClassify(a.registry, utterance)
	}

	result.Source = "llm"
	a.normalize(result, utterance)

	a.logger.Printf("[INTENT] %s %s (confidence %.2f, ambiguous %v)",
		result.Operation, result.Collection, result.Confidence, result.Ambiguous)
	return result
}

// ExtractFields pulls schema field values out of an utterance. Only fields
// the collection declares survive; everything else is discarded. Never
// returns an error.
func (a *Adapter) ExtractFields(ctx context.Context, s *schema.CollectionSchema, utterance string) map[string]string {
	if a.provider == nil {
		return FallbackExtract(s, utterance)
	}

	prompt := a.buildExtractionPrompt(s, utterance)

	response, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		a.logger.Printf("[WARN] field extraction failed, using fallback: %v", err)
		return FallbackExtract(s, utterance)
	}

	raw := extractJSON(response)
	if raw == "" {
		a.logger.Printf("[WARN] no JSON in extraction response, using fallback")
		return FallbackExtract(s, utterance)
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		a.logger.Printf("[WARN] extraction unmarshal failed, using fallback: %v", err)
		return FallbackExtract(s, utterance)
	}

	fields := make(map[string]string)
	for k, v := range parsed {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, "null") || strings.EqualFold(v, "unknown") {
			continue
		}
		if s.HasField(k) {
			fields[k] = v
		}
	}
	return fields
}

func (a *Adapter) buildIntentPrompt(utterance string) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are an intent classifier for a business record assistant.\n")
	prompt.WriteString("You do NOT answer questions. You only classify intent.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<collections>\n")
	for _, name := range a.registry.Names() {
		prompt.WriteString(name)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</collections>\n\n")

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(utterance)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<rules>\n")
	prompt.WriteString("operation is CREATE when the user wants to record, register, submit, book or file something new.\n")
	prompt.WriteString("operation is READ when the user wants to find, show, list, check or look up existing records.\n")
	prompt.WriteString("collection MUST be one name from <collections>, chosen by meaning not by string match.\n")
	prompt.WriteString("If no collection fits, use an empty collection and low confidence.\n")
	prompt.WriteString("</rules>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"operation\": \"CREATE|READ\",\n")
	prompt.WriteString("  \"collection\": \"one collection name or empty\",\n")
	prompt.WriteString("  \"confidence\": 0.95,\n")
	prompt.WriteString("  \"reasoning\": \"Brief explanation\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func (a *Adapter) buildExtractionPrompt(s *schema.CollectionSchema, utterance string) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You extract field values from a user message. You never invent values.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString(fmt.Sprintf("<collection>%s</collection>\n", s.Name))
	prompt.WriteString("<fields>\n")
	for _, f := range s.Fields() {
		prompt.WriteString(f)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</fields>\n\n")

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(utterance)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY a flat JSON object mapping field names to string values.\n")
	prompt.WriteString("Include ONLY fields whose value is explicitly present in the message.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func (a *Adapter) parseIntent(response string) (*IntentResult, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var result IntentResult
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	result.Operation = strings.ToUpper(strings.TrimSpace(result.Operation))
	result.Collection = strings.TrimSpace(result.Collection)
	return &result, nil
}

// normalize validates the model's output against the catalog and applies
// the ambiguity threshold. A hallucinated collection name drops confidence
// to zero rather than flowing downstream.
func (a *Adapter) normalize(result *IntentResult, utterance string) {
	if result.Operation != store.OperationCreate && result.Operation != store.OperationRead {
		result.Confidence = 0
	}
	if result.Collection != "" {
		if _, err := a.registry.Lookup(result.Collection); err != nil {
			result.Collection = ""
			result.Confidence = 0
		}
	}
	if result.Collection == "" {
		result.Confidence = 0
	}

	if result.Confidence < ConfidenceThreshold {
		result.Ambiguous = true
		if len(result.Candidates) == 0 {
			result.Candidates = candidateCollections(a.registry, utterance)
		}
	}
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
