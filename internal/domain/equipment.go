package domain

type EquipmentCondition string

const (
	EquipmentConditionExcellent EquipmentCondition = "Excellent"
	EquipmentConditionGood      EquipmentCondition = "Good"
	EquipmentConditionFair      EquipmentCondition = "Fair"
	EquipmentConditionPoor      EquipmentCondition = "Poor"
)

// ValidCondition reports whether s is one of the known conditions.
func ValidCondition(s string) bool {
	switch EquipmentCondition(s) {
	case EquipmentConditionExcellent, EquipmentConditionGood, EquipmentConditionFair, EquipmentConditionPoor:
		return true
	}
	return false
}

// Equipment is a lendable inventory record. Available counts units not
// currently committed to an approved borrow request and must stay within
// [0, Quantity] at all times.
type Equipment struct {
	ID          int32              `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Condition   EquipmentCondition `json:"condition"`
	Quantity    int32              `json:"quantity"`
	Available   int32              `json:"available"`
	Location    string             `json:"location"`
	CreatedOn   string             `json:"created_on"`
	UpdatedOn   string             `json:"updated_on"`
	DeletedOn   *string            `json:"deleted_on,omitempty"`
}
