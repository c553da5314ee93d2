package gateway

import (
	"fmt"
	"strings"

	"github.com/tbourn/quantifyme-backend/internal/scoring"
)

var systemPrompts = map[string]string{
	LocaleEN: "You are a supportive coach. In one or two sentences, give concrete, clear, non-medical advice based on today's cognitive score and measurements.",
	LocaleFR: "Tu es un coach bienveillant. En une à deux phrases, donne un conseil concret, clair et non médical, basé sur le score cognitif et les mesures du jour.",
}

var replyIn = map[string]string{
	LocaleEN: "Answer in English, two sentences at most.",
	LocaleFR: "Réponds en français, 2 phrases maximum.",
}

// buildPrompt returns the system and user prompts for req.
func buildPrompt(req Request) (system, user string) {
	loc := req.Locale
	if _, ok := systemPrompts[loc]; !ok {
		loc = LocaleEN
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily Cognitive Score: %.1f/100\n", req.Composite)
	if len(req.Inputs) > 0 {
		fmt.Fprintf(&b, "Mood: %.1f, Stress: %.1f, Sleep: %.1fh, Focus: %.1f\n",
			req.Inputs[scoring.Mood], req.Inputs[scoring.Stress],
			req.Inputs[scoring.Sleep], req.Inputs[scoring.Focus])
	}
	b.WriteString(replyIn[loc])
	return systemPrompts[loc], b.String()
}
