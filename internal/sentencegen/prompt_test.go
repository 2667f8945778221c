package sentencegen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage_EasyContainsConstraints(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Difficulty:  DifficultyEasy,
		Environment: "병원",
	}, 5)

	for _, want := range []string{
		"Create 5",
		"쉬움",
		"병원",
		"3-8 words",
		"Avoid:",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildUserMessage_HardIncludesAdvanced(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Difficulty:  DifficultyHard,
		Environment: "회사",
	}, 3)

	if !strings.Contains(msg, "어려움") {
		t.Errorf("prompt missing difficulty label:\n%s", msg)
	}
	if !strings.Contains(msg, "Include:") {
		t.Errorf("hard tier should carry an Include rule:\n%s", msg)
	}
}

func TestBuildUserMessage_UnknownEnvironmentGetsDefaultTopics(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Difficulty:  DifficultyMedium,
		Environment: "우주정거장",
	}, 5)

	if !strings.Contains(msg, "Topics:") {
		t.Errorf("prompt missing topics line:\n%s", msg)
	}
}

func TestTopicsFor_KnownEnvironments(t *testing.T) {
	for _, env := range []string{"일상", "회사", "쇼핑", "여행", "레스토랑", "병원", "학교", "공항"} {
		topics := topicsFor(env)
		if len(topics) == 0 {
			t.Errorf("no topics for %q", env)
		}
	}
}
