package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CaptionResponse represents the JSON response from OpenAI
type CaptionResponse struct {
	Caption string `json:"caption" jsonschema_description:"A short, engaging caption for the reel"`
}

// GenerateSchema generates a JSON schema for structured outputs
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// captionResponseSchema is the cached schema
var captionResponseSchema = GenerateSchema[CaptionResponse]()

// GenerateCaption calls OpenAI to write a caption for a reel based on
// the post title. Without an API key it falls back to the title itself.
func GenerateCaption(ctx context.Context, apiKey, title string) (string, error) {
	if apiKey == "" {
		log.Println("No OpenAI API key set, using post title as caption")
		return title, nil
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	prompt := fmt.Sprintf(`You are writing an Instagram caption for a short vertical video that narrates a Reddit post.

Post title: %s

Write a caption that:
- Hooks the viewer in the first line
- Stays under 200 characters
- Includes 3-5 relevant hashtags at the end

Respond in JSON format with this structure:
{
  "caption": "your caption here"
}`, title)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "reel_caption",
		Description: openai.String("A caption for an Instagram reel"),
		Schema:      captionResponseSchema,
		Strict:      openai.Bool(true),
	}

	chatCompletion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModelGPT4oMini,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	rawResponse := chatCompletion.Choices[0].Message.Content
	if rawResponse == "" {
		return "", fmt.Errorf("OpenAI returned empty response. Finish reason: %s", chatCompletion.Choices[0].FinishReason)
	}

	var capResp CaptionResponse
	if err := json.Unmarshal([]byte(rawResponse), &capResp); err != nil {
		return "", fmt.Errorf("failed to parse OpenAI JSON response: %w", err)
	}

	caption := strings.TrimSpace(capResp.Caption)
	if caption == "" {
		return "", fmt.Errorf("OpenAI returned empty caption")
	}

	return caption, nil
}
