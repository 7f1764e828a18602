package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// validate checks a seed data directory before it ships: strict JSON
// decoding, cross-reference validation, and snake_case ID hygiene.
func main() {
	dataDir := "./data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	validator := &ContentValidator{dataDir: dataDir}
	if err := validator.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Seed content is valid!")
}

type ContentValidator struct {
	dataDir string
	errors  []string
}

func (v *ContentValidator) run() error {
	fmt.Printf("Validating %s...\n", v.dataDir)

	content := &kingdom.Content{}
	required := map[string]interface{}{
		"variables.json": &content.Variables,
		"regions.json":   &content.Regions,
		"npcs.json":      &content.NPCs,
		"attitudes.json": &content.Attitudes,
		"triggers.json":  &content.Triggers,
		"actions.json":   &content.Actions,
		"issues.json":    &content.Issues,
	}
	optional := map[string]interface{}{
		"role_info.json":         &content.RoleInfo,
		"historical_events.json": &content.Events,
	}

	for filename, dst := range required {
		if err := v.decodeFile(filename, dst, true); err != nil {
			return err
		}
	}
	for filename, dst := range optional {
		if err := v.decodeFile(filename, dst, false); err != nil {
			return err
		}
	}

	if err := content.Validate(); err != nil {
		return err
	}

	v.validateContent(content)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

// decodeFile strict-decodes one seed file. The engine tolerates
// malformed trigger rows at load time; the validator does not.
func (v *ContentValidator) decodeFile(filename string, dst interface{}, required bool) error {
	data, err := os.ReadFile(filepath.Join(v.dataDir, filename))
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}
	return nil
}

func (v *ContentValidator) validateContent(c *kingdom.Content) {
	for _, vr := range c.Variables {
		v.validateIDFormat("variable ID", vr.VariableID)
		if vr.MinValue != nil && vr.MaxValue != nil && *vr.MinValue > *vr.MaxValue {
			v.addError(fmt.Sprintf("variable '%s' has min_value above max_value", vr.VariableID))
		}
	}
	for _, r := range c.Regions {
		v.validateIDFormat("region ID", r.RegionID)
	}
	for _, n := range c.NPCs {
		v.validateIDFormat("NPC ID", n.NPCID)
	}
	for _, a := range c.Attitudes {
		v.validateIDFormat("attitude ID", a.AttitudeID)
		if a.Volatility < 0 {
			v.addError(fmt.Sprintf("attitude '%s' has negative volatility", a.AttitudeID))
		}
	}
	for _, t := range c.Triggers {
		v.validateIDFormat("trigger ID", t.TriggerID)
		if t.CooldownRounds < 0 {
			v.addError(fmt.Sprintf("trigger '%s' has negative cooldown_rounds", t.TriggerID))
		}
	}
	for _, a := range c.Actions {
		v.validateIDFormat("action ID", a.ActionID)
		if a.UsesPerGame != nil && *a.UsesPerGame <= 0 {
			v.addError(fmt.Sprintf("action '%s' has non-positive uses_per_game", a.ActionID))
		}
	}
	for _, i := range c.Issues {
		v.validateIDFormat("issue ID", i.IssueID)
		for _, r := range i.Resolutions {
			v.validateIDFormat("resolution choice ID", r.ChoiceID)
		}
	}
}

func (v *ContentValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}
	if !validIDRegex.MatchString(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *ContentValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
