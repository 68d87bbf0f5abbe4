// Package assist asks Gemini on Vertex AI for a suggested annotation of a
// clue. Suggestions come back as JSON spans, are validated against the clue
// and the mode registry, and are applied through the normal reconciler so
// they obey the same overlap rules as manual tagging.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dshills/cluemark/internal/annotate"
)

// Options configures the assistant.
type Options struct {
	Project  string
	Location string
	Model    string
}

// Client wraps the Google GenAI client for Vertex AI.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a client using Application Default Credentials. Set
// GOOGLE_APPLICATION_CREDENTIALS to the service account key file path.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Project == "" {
		return nil, fmt.Errorf("assistant requires a project")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  opts.Project,
		Location: opts.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: opts.Model}, nil
}

// Suggestion is one proposed segment. Start and End are inclusive rune
// indices into the clue text.
type Suggestion struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Mode     string `json:"mode"`
	Wordplay string `json:"wordplay,omitempty"`
}

const promptTemplate = `You are annotating a cryptic crossword clue.

Clue: %q

Break the clue into its cryptic parts. Respond with a JSON array only, no
markdown, where each element is:
{"start": <rune index>, "end": <rune index>, "mode": "<mode>", "wordplay": "<device or empty>"}

start and end are inclusive character indices into the clue text.
Valid modes: %s.
Valid wordplay devices: anagram, reversal, container, hidden, deletion,
initial-letters, final-letters, homophone, other. Use an empty string when
no device applies.
Spans must not overlap.`

// Suggest asks the model for an annotation of the clue and returns the
// validated suggestions. Suggestions the model gets wrong, out-of-range
// spans or unknown modes, are dropped rather than failing the whole call.
func (c *Client) Suggest(ctx context.Context, clueText string, reg annotate.Registry) ([]Suggestion, error) {
	modes := make([]string, 0)
	for _, m := range reg.Modes() {
		d, err := reg.Descriptor(m)
		if err != nil || d.Clears {
			continue
		}
		modes = append(modes, string(m))
	}
	prompt := fmt.Sprintf(promptTemplate, clueText, strings.Join(modes, ", "))

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	suggestions, _, err := parseSuggestions([]byte(text), clueText, reg)
	return suggestions, err
}

// parseSuggestions decodes and validates a suggestion payload. Invalid
// elements are dropped; the drop count is returned for logging.
func parseSuggestions(data []byte, clueText string, reg annotate.Registry) ([]Suggestion, int, error) {
	var raw []Suggestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("parse suggestion JSON: %w", err)
	}

	runeLen := len([]rune(clueText))
	kept := make([]Suggestion, 0, len(raw))
	dropped := 0

	for _, s := range raw {
		if s.Start < 0 || s.End < s.Start || s.End >= runeLen {
			dropped++
			continue
		}
		d, err := reg.Descriptor(annotate.Mode(s.Mode))
		if err != nil || d.Clears {
			dropped++
			continue
		}
		if s.Wordplay != "" && annotate.WordplayFromString(s.Wordplay) == annotate.WordplayNone {
			s.Wordplay = ""
		}
		kept = append(kept, s)
	}
	return kept, dropped, nil
}

// Apply tags a clue with suggestions through the reconciler. Overlapping
// suggestions resolve the way manual tagging would, later spans displacing
// earlier ones. Returns the number applied.
func Apply(clue *annotate.Clue, rec annotate.Reconciler, suggestions []Suggestion) int {
	applied := 0
	for _, s := range suggestions {
		span := annotate.Span{Start: s.Start, End: s.End}
		if err := clue.Apply(rec, annotate.Mode(s.Mode), span); err != nil {
			continue
		}
		if w := annotate.WordplayFromString(s.Wordplay); w != annotate.WordplayNone {
			if seg, ok := clue.SegmentAt(s.Start); ok {
				clue.SetWordplay(seg.ID, w)
			}
		}
		applied++
	}
	return applied
}
