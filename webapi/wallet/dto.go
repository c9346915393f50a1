package wallet

// MovementInput represents the deposit/transfer form body. Value arrives as a
// string from the form and is parsed into a decimal by the handler. The "to"
// key is required for transfers only.
type MovementInput struct {
	Value string `json:"value" form:"value" validate:"required,max=32"`
	To    string `json:"to" form:"to" validate:"max=255"`
}
