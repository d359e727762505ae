package cart

import "github.com/shopspring/decimal"

// ActionType names an action kind. The values are the stable vocabulary
// shared between dispatchers and the reducer.
type ActionType string

const (
	TypeAdd      ActionType = "ADD"
	TypeRemove   ActionType = "REMOVE"
	TypeQuantity ActionType = "QUANTITY"
	TypeSubmit   ActionType = "SUBMIT"
)

// Action is a sealed interface. Only Add, Remove, Quantity and Submit
// implement it, each carrying exactly the data its transition needs.
type Action interface {
	Type() ActionType
	cartAction()
}

// Add puts one unit of SKU into the cart, creating the line if needed.
// Name and Price replace whatever the existing line held.
type Add struct {
	SKU   string
	Name  string
	Price decimal.Decimal
}

func (Add) Type() ActionType { return TypeAdd }
func (Add) cartAction()      {}

// Remove drops the line for SKU.
type Remove struct {
	SKU string
}

func (Remove) Type() ActionType { return TypeRemove }
func (Remove) cartAction()      {}

// Quantity sets the quantity of an existing line.
type Quantity struct {
	SKU string
	Qty int64
}

func (Quantity) Type() ActionType { return TypeQuantity }
func (Quantity) cartAction()      {}

// Submit clears the cart after an order is placed.
type Submit struct{}

func (Submit) Type() ActionType { return TypeSubmit }
func (Submit) cartAction()      {}
