package model

import "github.com/vapvarun/wc-subscription-protection/model"

type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// CallToAction tells the notice renderer which link to offer on deny.
type CallToAction string

const (
	CallToActionNone   CallToAction = ""
	CallToActionLogin  CallToAction = "login"
	CallToActionBrowse CallToAction = "browse"
)

// AccessDecision is the result of one evaluation. Message, RequiredProducts
// and CallToAction are only set on deny.
type AccessDecision struct {
	Effect           Effect            `json:"effect"`
	Reason           string            `json:"reason,omitempty"`
	Message          string            `json:"message,omitempty"`
	RequiredProducts []model.ProductID `json:"required_products,omitempty"`
	CallToAction     CallToAction      `json:"call_to_action,omitempty"`
	MatchedProduct   model.ProductID   `json:"matched_product,omitempty"`
}

func (d *AccessDecision) Allowed() bool {
	return d != nil && d.Effect == EffectAllow
}
