package dnd

import "fmt"

// ReasonCode is a machine-readable cause for a refused drop. UI layers key
// their "cannot add" messages on it.
type ReasonCode string

const (
	ReasonComponentInstance ReasonCode = "CantAddToTplComponent"
	ReasonCodeComponentRoot ReasonCode = "CantAddToCodeComponentRoot"
	ReasonTableNonLeaf      ReasonCode = "CantAddToTableNonLeaf"
	ReasonImage             ReasonCode = "CantAddToImg"
	ReasonAtomic            ReasonCode = "CantAddToAtomic"
	ReasonAttrsChildren     ReasonCode = "CantAddToAttrsChildren"
	ReasonTextBlock         ReasonCode = "CantAddToTextBlock"
	ReasonNonListItemToList ReasonCode = "CantAddNonListItemToList"
	ReasonListItemToNonList ReasonCode = "CantAddListItemToNonList"
	ReasonLinkedPropsToSlot ReasonCode = "CantAddLinkedPropsToSlot"
	ReasonSelfDescendant    ReasonCode = "CantAddToSelfDescendant"
	ReasonSlotType          ReasonCode = "ViolatesSlotType"
	ReasonSiblingToRoot     ReasonCode = "CantAddSiblingToRoot"
	ReasonSiblingToTableSub ReasonCode = "CantAddSiblingToTableSub"
	ReasonSiblingToSlot     ReasonCode = "CantAddSiblingToSlotSelection"
	ReasonSlotOutOfContext  ReasonCode = "CantAddToSlotOutOfContext"
	ReasonLocked            ReasonCode = "Locked"
)

// Reason explains why a drop was refused. A nil *Reason means accepted.
type Reason struct {
	Code   ReasonCode
	Target TemplateID // the node that refused, if known
	Detail string
}

// Reject returns a reason with the given code for target.
func Reject(code ReasonCode, target TemplateID) *Reason {
	return &Reason{Code: code, Target: target}
}

func (r *Reason) String() string {
	if r == nil {
		return "accepted"
	}
	if r.Detail != "" {
		return fmt.Sprintf("%s(%s): %s", r.Code, r.Target, r.Detail)
	}
	return fmt.Sprintf("%s(%s)", r.Code, r.Target)
}

// Accepted reports whether r allows the drop.
func (r *Reason) Accepted() bool { return r == nil }
