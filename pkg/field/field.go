package field

// Known field type identifiers. The set mirrors the catalog the dashboard
// offered in its field creator.
const (
	TypeText           = "text"
	TypeTextArea       = "text-area"
	TypeNumber         = "number"
	TypeDate           = "date"
	TypeMoney          = "money"
	TypeCheckbox       = "checkbox"
	TypeDropdown       = "dropdown"
	TypeRating         = "rating"
	TypeLabels         = "labels"
	TypeProgressManual = "progress-manual"
	TypeProgressAuto   = "progress-auto"
	TypeWebsite        = "website"
	TypeEmail          = "email"
	TypePhone          = "phone"
	TypeLocation       = "location"
	TypePeople         = "people"
)

// Field is one user-defined column attached to every task through the shared
// schema. Width is a presentation hint only.
type Field struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
	Width    int      `json:"width,omitempty" yaml:"width,omitempty"`
}

// DefaultFields is the schema a fresh workspace starts with.
func DefaultFields() []Field {
	return []Field{
		{
			ID:      "status-field",
			Name:    "Status",
			Type:    TypeDropdown,
			Width:   120,
			Options: []string{"Not Started", "In Progress", "Review", "Done"},
		},
		{ID: "budget-field", Name: "Budget", Type: TypeMoney, Width: 100},
		{ID: "rating-field", Name: "Priority Rating", Type: TypeRating, Width: 140},
	}
}
