package gateway

import (
	"context"
	"strings"

	"github.com/tbourn/quantifyme-backend/internal/scoring"
)

type adviceText struct {
	bands                           [5]string // >=85, >=70, >=55, >=40, below
	highStress, shortSleep, focusOK string
}

var advice = map[string]adviceText{
	LocaleEN: {
		bands: [5]string{
			"Very high mental energy. Take on your most complex work today.",
			"Good clarity. Plan one or two blocks of deep work.",
			"A steady day. Keep regular breaks to stay on track.",
			"Energy is slowing down. Favor simple tasks today.",
			"Marked cognitive fatigue. Prioritize recovery and sleep.",
		},
		highStress: "Stress is high: try 4-7-8 breathing and a short walk.",
		shortSleep: "Short night: avoid multitasking, stay hydrated, nap briefly if you can.",
		focusOK:    "Focus window open: try 60 to 90 minutes of deep work.",
	},
	LocaleFR: {
		bands: [5]string{
			"Énergie mentale très élevée. Attaque tes tâches les plus complexes.",
			"Bonne clarté d'esprit. Prévois un ou deux blocs de travail profond.",
			"Journée stable. Garde des pauses régulières.",
			"Baisse de régime. Privilégie les tâches simples aujourd'hui.",
			"Fatigue cognitive marquée. Priorité à la récupération et au sommeil.",
		},
		highStress: "Stress élevé : respiration 4-7-8 et courte marche conseillées.",
		shortSleep: "Nuit courte : évite le multitâche, hydrate-toi, courte sieste si possible.",
		focusOK:    "Fenêtre de concentration : tente 60 à 90 minutes de travail profond.",
	},
}

// LocalAdvice builds a deterministic interpretation from the composite band
// and a few input-based refinements. It never fails and needs no network.
func LocalAdvice(req Request) string {
	txt, ok := advice[req.Locale]
	if !ok {
		txt = advice[LocaleEN]
	}

	var parts []string
	switch c := req.Composite; {
	case c >= 85:
		parts = append(parts, txt.bands[0])
	case c >= 70:
		parts = append(parts, txt.bands[1])
	case c >= 55:
		parts = append(parts, txt.bands[2])
	case c >= 40:
		parts = append(parts, txt.bands[3])
	default:
		parts = append(parts, txt.bands[4])
	}

	if v, ok := req.Inputs[scoring.Stress]; ok && v >= 7 {
		parts = append(parts, txt.highStress)
	}
	if v, ok := req.Inputs[scoring.Sleep]; ok && v <= 5.5 {
		parts = append(parts, txt.shortSleep)
	}
	if v, ok := req.Inputs[scoring.Focus]; ok && v >= 8 && req.Composite >= 70 {
		parts = append(parts, txt.focusOK)
	}
	return strings.Join(parts, " ")
}

// Stub is the offline Interpreter. It is deterministic and used in tests,
// local development, and as the fallback when a live provider fails.
type Stub struct{}

func (Stub) Name() string { return ProviderStub }

func (Stub) Interpret(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrap(ProviderStub, err, false)
	}
	return LocalAdvice(req), nil
}
