package model

import "encoding/json"

// Stage is the current node of a user's conversation.
type Stage uint8

const (
	// StageUnknown is only produced when a stored value cannot be parsed.
	StageUnknown Stage = iota
	StageNew
	StageChoosingType
	StageAskingName
	StageMainMenu
)

var stageNames = map[Stage]string{
	StageUnknown:      "UNKNOWN",
	StageNew:          "NEW",
	StageChoosingType: "CHOOSING_TYPE",
	StageAskingName:   "ASKING_NAME",
	StageMainMenu:     "MAIN_MENU",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return stageNames[StageUnknown]
}

// ParseStage maps a stored stage name to a Stage. An empty value is NEW,
// matching the column default.
func ParseStage(raw string) (Stage, bool) {
	if raw == "" {
		return StageNew, true
	}
	for stage, name := range stageNames {
		if stage != StageUnknown && name == raw {
			return stage, true
		}
	}
	return StageUnknown, false
}

// RoleAssigned reports whether the user has already picked a role. Before
// that the stored role is only a placeholder.
func (s Stage) RoleAssigned() bool {
	return s == StageAskingName || s == StageMainMenu
}

func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
