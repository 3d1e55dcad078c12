package reasoning_test

import (
	"strings"
	"testing"

	"github.com/skyhook-labs/talon/internal/reasoning"
)

func TestComposePrompt(t *testing.T) {
	req := &reasoning.Request{
		Narrative: "Aircraft lost link during climbout and descended into trees.",
		Categories: []reasoning.CategoryRef{
			{Code: "AE100", Name: "Skill-Based Errors", Level: 1},
			{Code: "PE100", Name: "Physical Environment", Level: 2},
		},
	}

	prompt := reasoning.ComposePrompt(req)

	wantFragments := []string{
		"HFACS",
		"- AE100 (level 1): Skill-Based Errors",
		"- PE100 (level 2): Physical Environment",
		`"category_id"`,
		`"confidence"`,
		"exactly one result per listed category",
		"Narrative:\nAircraft lost link during climbout",
	}

	for _, fragment := range wantFragments {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing fragment %q", fragment)
		}
	}

	if idx := strings.Index(prompt, "Categories:"); idx < 0 {
		t.Error("prompt missing category section")
	} else if narr := strings.Index(prompt, "Narrative:"); narr < idx {
		t.Error("narrative should follow the category listing")
	}
}

func TestComposePromptListsEveryCategory(t *testing.T) {
	categories := []reasoning.CategoryRef{
		{Code: "A1", Name: "One", Level: 1},
		{Code: "B2", Name: "Two", Level: 2},
		{Code: "C3", Name: "Three", Level: 3},
		{Code: "D4", Name: "Four", Level: 4},
	}

	prompt := reasoning.ComposePrompt(&reasoning.Request{
		Narrative:  "narrative text",
		Categories: categories,
	})

	for _, c := range categories {
		if !strings.Contains(prompt, c.Code) {
			t.Errorf("prompt missing category %s", c.Code)
		}
	}
}
