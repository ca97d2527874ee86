// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Configuration {
	return Configuration{
		Goal:        GoalCollegeSubmission,
		HelpLevel:   HelpDIY,
		DegreeLevel: DegreeBachelors,
		Track:       "NLP",
		TimeDays:    MinTimeDays,
		PaperType:   PaperConference,
		OutputDepth: DepthDetailed,
	}
}

func TestConfigurationValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
		errMsg string
	}{
		{"valid", func(*Configuration) {}, ""},
		{"max days", func(c *Configuration) { c.TimeDays = MaxTimeDays }, ""},
		{"bad goal", func(c *Configuration) { c.Goal = "fame" }, `goal "fame"`},
		{"bad help", func(c *Configuration) { c.HelpLevel = "" }, "help level"},
		{"bad degree", func(c *Configuration) { c.DegreeLevel = "phd" }, "degree level"},
		{"blank track", func(c *Configuration) { c.Track = "   " }, "track is required"},
		{"too short", func(c *Configuration) { c.TimeDays = MinTimeDays - 1 }, "outside"},
		{"too long", func(c *Configuration) { c.TimeDays = MaxTimeDays + 1 }, "outside"},
		{"bad paper", func(c *Configuration) { c.PaperType = "thesis" }, "paper type"},
		{"empty depth", func(c *Configuration) { c.OutputDepth = "" }, "output depth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "College submission", GoalCollegeSubmission.Label())
	assert.Equal(t, "Done-for-you", HelpDoneForYou.Label())
	assert.Equal(t, "custom", Goal("custom").Label())
	assert.Equal(t, DepthBalanced.Label(), OutputDepth("").Label())
}

func TestIdeaNumberDecoding(t *testing.T) {
	tests := []struct {
		in   string
		want IdeaNumber
	}{
		{`{"idea_number": 3}`, "3"},
		{`{"idea_number": "4"}`, "4"},
		{`{"idea_number": "USER"}`, UserTopicID},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var topic SelectedTopic
		require.NoError(t, json.Unmarshal([]byte(tt.in), &topic), tt.in)
		assert.Equal(t, tt.want, topic.ID, tt.in)
	}

	var topic SelectedTopic
	assert.Error(t, json.Unmarshal([]byte(`{"idea_number": true}`), &topic))
}

func TestIdeaNumberEncoding(t *testing.T) {
	tests := []struct {
		id   IdeaNumber
		want string
	}{
		{"3", `3`},
		{UserTopicID, `"USER"`},
		{"07", `"07"`},
		{"", `""`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}
