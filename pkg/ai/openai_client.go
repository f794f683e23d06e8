// pkg/ai/openai_client.go

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAI struct {
	client openai.Client
	model  string
	schema interface{}
}

// GenerateSchema reflects a strict JSON schema for structured responses.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// NewOpenAI talks to an OpenAI compatible endpoint. An empty endpoint uses the
// public API.
func NewOpenAI(endpoint, key, model string) Client {
	opts := []option.RequestOption{option.WithAPIKey(key), option.WithRequestTimeout(25 * time.Second)}
	if endpoint != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(endpoint, "/")+"/v1/"))
	}
	return &openAI{
		client: openai.NewClient(opts...),
		model:  model,
		schema: GenerateSchema[FarmingInfo](),
	}
}

func (c *openAI) ExtractFarmingInfo(ctx context.Context, text string, crops, soils []string) (*FarmingInfo, error) {
	system := fmt.Sprintf(`You extract farming information from a farmer's message. Messages may be in Tamil or English.
Return soil_type and crop_type using exactly one of the known names (Tamil names may be returned as written).
Return planting_date only if the farmer gave a full date, formatted YYYY-MM-DD.
Use an empty string for anything not mentioned. Do not explain.

Known crops: %s
Known soils: %s`, strings.Join(crops, ", "), strings.Join(soils, ", "))

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "farming_info",
		Description: openai.String("Soil type, crop type and planting date mentioned by a farmer"),
		Schema:      c.schema,
		Strict:      openai.Bool(true),
	}
	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(0.1),
	})
	if err != nil {
		return nil, fmt.Errorf("extract farming info: %w", err)
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, errors.New("extract farming info: empty response")
	}
	var info FarmingInfo
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &info); err != nil {
		log.Printf("[ai] bad extraction payload: %v raw=%s", err, chat.Choices[0].Message.Content)
		return nil, fmt.Errorf("extract farming info: %w", err)
	}
	return &info, nil
}

func (c *openAI) SummarizePlan(ctx context.Context, b PlanBrief) string {
	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are an irrigation agronomist in Tamil Nadu who writes concise, actionable Markdown for smallholder farmers."),
			openai.UserMessage(renderSummaryPrompt(b)),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		log.Printf("[ai] summarize plan: %v", err)
		return fallbackSummary(b)
	}
	if len(chat.Choices) == 0 {
		return fallbackSummary(b)
	}
	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	if content == "" {
		return fallbackSummary(b)
	}
	return content
}

func renderSummaryPrompt(b PlanBrief) string {
	return fmt.Sprintf(`
Summarise this irrigation plan in at most 6 Markdown bullet points.
- State how often to irrigate and how much, in litres per acre and in mm.
- Mention the current growth stage and the depth guidance.
- If ADVISORY NOTES are present, use them for context but do not copy them at length.

FIELD: %s, %s on %s, planted %s, %.2f acres

TOTALS: %.1f mm over the season, %.0f L/acre, %d irrigations, %.1f mm/day on average

INSTRUCTION: %s
%s

ADVISORY NOTES:
%s
`, b.Field.Name, b.Field.CropType, b.Field.SoilType, b.Field.PlantingDate, b.Field.AreaAcres,
		b.Output.TotalWaterMM, b.Output.TotalWaterLitersAcre, b.Output.IrrigationCount, b.Output.DailyAvgMM,
		b.Instruction.SimpleInstruction, b.Instruction.VolumeNote, b.Advisory)
}

func fallbackSummary(b PlanBrief) string {
	var sb strings.Builder
	sb.WriteString("**Irrigation plan**\n\n")
	if b.Field != nil {
		fmt.Fprintf(&sb, "- Field: #%d %s, %s on %s, %.2f acres\n", b.Field.FieldID, b.Field.Name, b.Field.CropType, b.Field.SoilType, b.Field.AreaAcres)
	}
	fmt.Fprintf(&sb, "- Season water: %.1f mm (%.0f L/acre) in %d irrigations\n",
		b.Output.TotalWaterMM, b.Output.TotalWaterLitersAcre, b.Output.IrrigationCount)
	if b.Instruction.NextWaterDate != "" {
		fmt.Fprintf(&sb, "- Next irrigation: %s\n", b.Instruction.NextWaterDate)
	}
	fmt.Fprintf(&sb, "- %s\n", b.Instruction.SimpleInstruction)
	return sb.String()
}
