// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/draftwise/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure the workspace (onboarding)",
	Long: `Init records the project configuration every prompt is built from:
goal, help level, degree level, track, time window, paper type and output
depth. Values come from --from (a YAML profile) and are overridden by any
flag given explicitly. Existing artifacts in the workspace are kept.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("from", "", "YAML profile with the configuration fields")
	initCmd.Flags().String("goal", string(types.GoalCollegeSubmission), "college-submission or personal-project")
	initCmd.Flags().String("help-level", string(types.HelpGuided), "diy, guided or done-for-you")
	initCmd.Flags().String("degree", string(types.DegreeBachelors), "bachelors or masters")
	initCmd.Flags().String("track", "", "research track, e.g. \"Computer vision\"")
	initCmd.Flags().Int("days", 30, "time window in days (7-180)")
	initCmd.Flags().String("paper-type", string(types.PaperCollege), "college, conference or report")
	initCmd.Flags().String("depth", string(types.DepthBalanced), "output depth: short, balanced or detailed")

	rootCmd.AddCommand(initCmd)
}

// loadProfile reads a YAML onboarding profile.
func loadProfile(path string) (types.Configuration, error) {
	var cfg types.Configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return cfg, nil
}

// configFromFlags starts from the profile (or flag defaults) and applies
// every flag the user set.
func configFromFlags(cmd *cobra.Command) (types.Configuration, error) {
	flags := cmd.Flags()
	str := func(name string) string { v, _ := flags.GetString(name); return v }
	days, _ := flags.GetInt("days")

	cfg := types.Configuration{
		Goal:        types.Goal(str("goal")),
		HelpLevel:   types.HelpLevel(str("help-level")),
		DegreeLevel: types.DegreeLevel(str("degree")),
		Track:       str("track"),
		TimeDays:    days,
		PaperType:   types.PaperType(str("paper-type")),
		OutputDepth: types.OutputDepth(str("depth")),
	}
	if from := str("from"); from != "" {
		profile, err := loadProfile(from)
		if err != nil {
			return cfg, err
		}
		cfg = mergeProfile(profile, cfg, flags.Changed)
	}
	return cfg, nil
}

// mergeProfile fills profile gaps from defaults and lets changed flags win.
func mergeProfile(profile, flagCfg types.Configuration, changed func(string) bool) types.Configuration {
	pick := func(flag string, fromProfile, fromFlag string) string {
		if changed(flag) || fromProfile == "" {
			return fromFlag
		}
		return fromProfile
	}
	out := types.Configuration{
		Goal:        types.Goal(pick("goal", string(profile.Goal), string(flagCfg.Goal))),
		HelpLevel:   types.HelpLevel(pick("help-level", string(profile.HelpLevel), string(flagCfg.HelpLevel))),
		DegreeLevel: types.DegreeLevel(pick("degree", string(profile.DegreeLevel), string(flagCfg.DegreeLevel))),
		Track:       pick("track", profile.Track, flagCfg.Track),
		PaperType:   types.PaperType(pick("paper-type", string(profile.PaperType), string(flagCfg.PaperType))),
		OutputDepth: types.OutputDepth(pick("depth", string(profile.OutputDepth), string(flagCfg.OutputDepth))),
		TimeDays:    profile.TimeDays,
	}
	if changed("days") || out.TimeDays == 0 {
		out.TimeDays = flagCfg.TimeDays
	}
	return out
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openSession("off")
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.studio.Onboard(cfg); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	fmt.Printf("Workspace configured: %s, %s, %d days (%s)\n",
		cfg.Track, cfg.DegreeLevel.Label(), cfg.TimeDays, s.path)
	return nil
}
