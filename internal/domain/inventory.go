package domain

// InventoryStack is a quantity of one catalog item owned by a player.
// A stack with quantity zero is deleted, never persisted at zero.
type InventoryStack struct {
	ItemCode string `json:"item_code"`
	Quantity int    `json:"quantity"`
	Equipped bool   `json:"equipped"`
}

// Inventory is the full set of stacks owned by one player.
type Inventory struct {
	PlayerID string           `json:"player_id"`
	Stacks   []InventoryStack `json:"stacks"`
}

// FindStack returns the index of the stack holding itemCode, or -1.
func (inv *Inventory) FindStack(itemCode string) int {
	for i := range inv.Stacks {
		if inv.Stacks[i].ItemCode == itemCode {
			return i
		}
	}
	return -1
}
