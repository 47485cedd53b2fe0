package rules

import "fmt"

// ActionKind identifies what an action did. Events carry the kind of the
// action that produced them and triggered abilities filter on it.
type ActionKind int

const (
	ActionNoop ActionKind = iota
	ActionDraw
	ActionPlay // a card is put onto the battlefield
	ActionPlayLand
	ActionTap
	ActionAddMana
	ActionMove
	ActionCast
	ActionActivate
	ActionSearch
	ActionEndTurn
	ActionAddCounter
	ActionSequence
	ActionResolve
	ActionTrigger
	ActionUntap
	ActionPayMana
)

var actionKindNames = map[ActionKind]string{
	ActionNoop:       "NOOP",
	ActionDraw:       "DRAW",
	ActionPlay:       "PLAY",
	ActionPlayLand:   "PLAY_LAND",
	ActionTap:        "TAP",
	ActionAddMana:    "ADD_MANA",
	ActionMove:       "MOVE",
	ActionCast:       "CAST",
	ActionActivate:   "ACTIVATE",
	ActionSearch:     "SEARCH",
	ActionEndTurn:    "END_TURN",
	ActionAddCounter: "ADD_COUNTER",
	ActionSequence:   "SEQUENCE",
	ActionResolve:    "RESOLVE",
	ActionTrigger:    "TRIGGER",
	ActionUntap:      "UNTAP",
	ActionPayMana:    "PAY_MANA",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(k))
}

// ParseActionKind maps a name produced by String back to its kind.
func ParseActionKind(name string) (ActionKind, error) {
	for kind, n := range actionKindNames {
		if n == name {
			return kind, nil
		}
	}
	return ActionNoop, fmt.Errorf("unknown action kind %q", name)
}
